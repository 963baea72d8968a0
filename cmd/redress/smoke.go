package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"redress/pkg/client"
	"redress/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var smokeCommand = &cli.Command{
	Name:  "smoke",
	Usage: "Exercise a running server end to end",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "API base URL",
			Value: client.DefaultBaseURL,
		},
	},
	Action: smoke,
}

func smoke(cCtx *cli.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	api := client.New(cCtx.String("base-url"))
	log := logrus.StandardLogger()

	health, err := api.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.WithField("status", health.Status).Info("health ok")

	grievance, err := api.SubmitGrievance(ctx, types.SubmitGrievance{
		Title:       "Broken AC in Room 204",
		Description: "The air conditioning unit in hostel room 204 has been non-functional for five days.",
		Category:    "hostel",
		Anonymous:   true,
	})
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}
	if grievance.Status != types.GrievanceStatusSubmitted {
		return fmt.Errorf("expected status %q after submit, got %q", types.GrievanceStatusSubmitted, grievance.Status)
	}
	log.WithField("id", grievance.ID).WithField("reference_id", grievance.ReferenceID).Info("submitted")

	fetched, err := api.Grievance(ctx, grievance.ID)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}
	if fetched.Title != grievance.Title || fetched.Category != grievance.Category {
		return fmt.Errorf("fetched grievance does not match submitted payload")
	}
	log.Info("fetched submitted grievance")

	resolved, err := api.UpdateStatus(ctx, grievance.ID, types.GrievanceStatusResolved)
	if err != nil {
		return fmt.Errorf("status update failed: %w", err)
	}
	if resolved.Status != types.GrievanceStatusResolved {
		return fmt.Errorf("expected status resolved, got %q", resolved.Status)
	}
	if !resolved.UpdatedAt.After(grievance.UpdatedAt) {
		return fmt.Errorf("updated_at was not refreshed on status update")
	}
	log.Info("status updated to resolved")

	uploaded, err := api.Upload(ctx, grievance.ID, "smoke test attachment", []client.UploadFile{
		{Name: "note.txt", Contents: strings.NewReader("smoke test attachment contents")},
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	if len(uploaded) != 1 {
		return fmt.Errorf("expected 1 uploaded file, got %d", len(uploaded))
	}
	fileID := uploaded[0].ID
	log.WithField("file_id", fileID).Info("uploaded attachment")

	files, err := api.Files(ctx, grievance.ID)
	if err != nil {
		return fmt.Errorf("list files failed: %w", err)
	}
	if len(files) != 1 {
		return fmt.Errorf("expected 1 listed file, got %d", len(files))
	}

	contents, _, err := api.Download(ctx, fileID)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	body, err := io.ReadAll(contents)
	contents.Close()
	if err != nil {
		return fmt.Errorf("read download failed: %w", err)
	}
	if string(body) != "smoke test attachment contents" {
		return fmt.Errorf("downloaded contents do not match upload")
	}
	log.Info("downloaded attachment")

	if err := api.DeleteFile(ctx, fileID); err != nil {
		return fmt.Errorf("delete file failed: %w", err)
	}
	if _, _, err := api.Download(ctx, fileID); err == nil {
		return fmt.Errorf("expected download of deleted file to fail")
	}
	log.Info("deleted attachment, subsequent download rejected")

	log.Info("smoke test passed")
	return nil
}
