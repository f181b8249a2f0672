package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/campushire/apiserver/config"
	"github.com/campushire/apiserver/internal/db"
	"github.com/campushire/apiserver/internal/handlers"
	"github.com/campushire/apiserver/internal/services"
	"github.com/campushire/apiserver/internal/storage"
	"github.com/campushire/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	log        *zap.Logger
}

// New constructs a Server with all repositories, services, and routes wired.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	jobRepo := store.NewJobRepository(dbConn)
	applicationRepo := store.NewApplicationRepository(dbConn)
	profileRepo := store.NewProfileRepository(dbConn)
	statsRepo := store.NewStatsRepository(dbConn)

	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo)
	profileService := services.NewProfileService(profileRepo)
	statsService := services.NewStatsService(statsRepo)

	blobStore := openStorage(ctx, cfg, log)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		requestLogger(log),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})
	router.Route("/jobs", func(r chi.Router) {
		handlers.JobRouter(r, jobService, userService, authMiddleware)
	})
	router.Route("/applications", func(r chi.Router) {
		handlers.ApplicationRouter(r, applicationService, userService, authMiddleware)
	})
	router.Route("/profile", func(r chi.Router) {
		handlers.ProfileRouter(r, profileService, userService, blobStore, authMiddleware)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})
	router.Route("/stats", func(r chi.Router) {
		handlers.StatsRouter(r, statsService, userService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		log:        log,
	}, nil
}

// openStorage builds the configured object storage backend. The server
// still starts without one; only resume upload is disabled.
func openStorage(ctx context.Context, cfg config.Config, log *zap.Logger) *storage.Storage {
	var backend storage.ObjectStorage
	var err error

	switch cfg.Storage.Backend {
	case "gcs":
		backend, err = storage.NewGCSClient(ctx, cfg.Storage.GCS)
	case "minio", "":
		backend, err = storage.NewMinioClient(cfg.Storage.Minio)
	default:
		err = fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		log.Warn("object storage unavailable, resume upload disabled", zap.Error(err))
		return nil
	}

	blobStore := storage.NewStorage(backend)
	if err := blobStore.EnsureBucket(ctx); err != nil {
		log.Warn("object storage bucket unavailable, resume upload disabled", zap.Error(err))
		return nil
	}
	return blobStore
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
