package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"redress/internal/storage"
	"redress/internal/store"
	"redress/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger      *logrus.Logger
	config      *types.Config
	grievances  store.GrievanceStore
	attachments store.AttachmentStore
	files       storage.Storage

	started time.Time
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	grievances store.GrievanceStore,
	attachments store.AttachmentStore,
	files storage.Storage,
) *Service {
	mux := flow.New()

	c := cors.New(cors.Options{
		AllowedOrigins: config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	s := &Service{
		logger:      logger,
		config:      config,
		grievances:  grievances,
		attachments: attachments,
		files:       files,

		started: time.Now(),
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           c.Handler(mux),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.RecoverPanic)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/api/health", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/grievances", s.handleSubmitGrievance, http.MethodPost)
	r.HandleFunc("/api/grievances", s.handleListGrievances, http.MethodGet)
	r.HandleFunc("/api/grievances/:id", s.handleGrievanceByID, http.MethodGet)
	r.HandleFunc("/api/grievances/:id/status", s.handleUpdateGrievanceStatus, http.MethodPut, http.MethodPatch)

	r.HandleFunc("/api/upload", s.handleUpload, http.MethodPost)
	r.HandleFunc("/api/files/:grievanceID", s.handleListFiles, http.MethodGet)
	r.HandleFunc("/api/download/:fileID", s.handleDownload, http.MethodGet)
	r.HandleFunc("/api/files/:fileID", s.handleDeleteFile, http.MethodDelete)
}
