package server

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"vetportal/internal/config"
	"vetportal/internal/database"
	"vetportal/internal/drafts"
	"vetportal/internal/models"
	"vetportal/internal/storage"
)

type Server struct {
	cfg     *config.AppConfig
	logger  zerolog.Logger
	db      *models.DB
	health  database.Service
	s3      *storage.S3Service
	drafts  drafts.Store
}

func NewServer(cfg *config.AppConfig, logger zerolog.Logger, db *models.DB, health database.Service, s3 *storage.S3Service, draftStore drafts.Store) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
		health: health,
		s3:     s3,
		drafts: draftStore,
	}
}

func (s *Server) DB() *models.DB {
	return s.db
}

func (s *Server) Drafts() drafts.Store {
	return s.drafts
}

func (s *Server) Storage() *storage.S3Service {
	return s.s3
}

func (s *Server) Log() *zerolog.Logger {
	return &s.logger
}

// HTTPServer wraps the gin handler in an http.Server with the configured
// timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.HTTP.Host, s.cfg.HTTP.Port),
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
		IdleTimeout:  s.cfg.HTTP.IdleTimeout,
	}
}
