package main

import (
	"fmt"

	"redress/internal/validate"

	"github.com/urfave/cli/v2"
)

var refidCommand = &cli.Command{
	Name:  "refid",
	Usage: "Generate human-facing grievance reference IDs",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of IDs to generate",
			Value:   1,
		},
	},
	Action: func(c *cli.Context) error {
		count := c.Int("count")
		for i := 0; i < count; i++ {
			fmt.Println(validate.ReferenceID())
		}
		return nil
	},
}
