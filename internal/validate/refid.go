package validate

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// ReferenceID produces a human-facing display token for a grievance,
// e.g. GRV-M1X4K9Z2-A7QW. It combines a base-36 timestamp with a random
// base-36 suffix; collisions are possible, so it is never used as a
// primary key.
func ReferenceID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int63n(36*36*36*36), 36)
	for len(suffix) < 4 {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("GRV-%s-%s", strings.ToUpper(ts), strings.ToUpper(suffix))
}
