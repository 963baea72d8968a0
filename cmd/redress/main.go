package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "redress",
		Usage: "Grievance tracking API server",
		Commands: []*cli.Command{
			serveCommand,
			seedCommand,
			refidCommand,
			smokeCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("application failed")
	}
}
