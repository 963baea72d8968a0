package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redress/internal/db"
	"redress/internal/server"
	"redress/internal/storage"
	"redress/internal/store"
	"redress/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP API server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	grievances, attachments, cleanup, err := buildStores(ctx, config, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := buildStorage(ctx, config)
	if err != nil {
		return err
	}

	srv := server.New(config, logger, grievances, attachments, files)

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

// buildStores wires the postgres repositories when DATABASE_URL is set
// and falls back to the in-memory stores for db-less development runs.
func buildStores(ctx context.Context, config *types.Config, logger *logrus.Logger) (store.GrievanceStore, store.AttachmentStore, func(), error) {
	if config.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; using in-memory stores, records will not survive a restart")
		return store.NewMemoryGrievanceStore(), store.NewMemoryAttachmentStore(), func() {}, nil
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return nil, nil, nil, err
	}

	return store.NewGrievanceRepository(pool), store.NewAttachmentRepository(pool), pool.Close, nil
}

func buildStorage(ctx context.Context, config *types.Config) (storage.Storage, error) {
	switch config.StorageBackend {
	case "local":
		return storage.NewLocalStorage(config.UploadDir)
	case "s3":
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Storage(s3.NewFromConfig(awsConfig), config.S3Bucket, config.S3KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
	}
}
