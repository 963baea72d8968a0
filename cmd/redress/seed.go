package main

import (
	"context"
	"fmt"

	"redress/internal/db"
	"redress/internal/seed"
	"redress/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with sample grievances",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"c"},
			Usage:   "Number of grievances to create",
			Value:   25,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Print every created record",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.DatabaseURL == "" {
			return fmt.Errorf("set DATABASE_URL to seed a database")
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		grievanceRepo := store.NewGrievanceRepository(pool)

		logrus.Info("Seeding grievances...")
		created, err := seed.SeedFakeGrievances(ctx, grievanceRepo, c.Int("count"))
		if err != nil {
			return fmt.Errorf("failed to seed grievances: %w", err)
		}

		if c.Bool("verbose") {
			pp.Println(created)
		}

		logrus.WithField("count", len(created)).Info("Grievances seeded successfully")

		return nil
	},
}
