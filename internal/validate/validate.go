package validate

import (
	"regexp"
	"strings"

	"redress/pkg/types"
)

const (
	minTitleLen       = 5
	minDescriptionLen = 20
	minNameLen        = 2
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result accumulates every failed check for a submission. Checks never
// short-circuit; Errors preserves the order the checks run in.
type Result struct {
	Errors []string
}

func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Submission runs every field check against a grievance submission and
// returns the accumulated error messages.
func Submission(in types.SubmitGrievance) Result {
	var result Result

	if len(strings.TrimSpace(in.Title)) < minTitleLen {
		result.Errors = append(result.Errors, "Title must be at least 5 characters long")
	}

	if len(strings.TrimSpace(in.Description)) < minDescriptionLen {
		result.Errors = append(result.Errors, "Description must be at least 20 characters long")
	}

	if strings.TrimSpace(in.Category) == "" {
		result.Errors = append(result.Errors, "Please select a category")
	}

	if !in.Anonymous {
		if len(strings.TrimSpace(in.SubmitterName)) < minNameLen {
			result.Errors = append(result.Errors, "Name must be at least 2 characters long")
		}
		if !ValidEmail(in.SubmitterEmail) {
			result.Errors = append(result.Errors, "Please enter a valid email address")
		}
	}

	return result
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
