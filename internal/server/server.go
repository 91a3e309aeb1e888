package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ironstrike-games/studio-api/config"
	"github.com/ironstrike-games/studio-api/internal/assets"
	"github.com/ironstrike-games/studio-api/internal/credentials"
	"github.com/ironstrike-games/studio-api/internal/db"
	"github.com/ironstrike-games/studio-api/internal/events"
	"github.com/ironstrike-games/studio-api/internal/gateway"
	"github.com/ironstrike-games/studio-api/internal/handlers"
	"github.com/ironstrike-games/studio-api/internal/store"
	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	publisher  *events.Publisher
	log        *logrus.Logger
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	log := newLogger(cfg.LogLevel)

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	creds, err := newCredentialService(dbConn, cfg.Auth)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	publisher, err := newPublisher(ctx, cfg.Events)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	gw := gateway.New(
		gateway.Config{
			GamesPolicy:         cfg.Catalog.GamesPolicy,
			ChangelogsPolicy:    cfg.Catalog.ChangelogsPolicy,
			MaxInlineImageBytes: cfg.Catalog.MaxInlineImageBytes,
		},
		store.NewProfileRepository(dbConn),
		store.NewGameRepository(dbConn),
		store.NewChangelogRepository(dbConn),
		creds,
		publisher,
		log,
	)

	authHandler := handlers.NewAuthHandler(gw)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, gw)
	})
	router.Group(func(r chi.Router) {
		handlers.CatalogRouter(r, gw, authHandler)
		handlers.RosterRouter(r, gw, authHandler)
	})

	assetStore, err := newAssetStore(ctx, cfg.Assets)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if assetStore != nil {
		if err := assetStore.EnsureBucket(ctx); err != nil {
			_ = dbConn.Close()
			return nil, fmt.Errorf("ensure assets bucket failed: %w", err)
		}
		router.Group(func(r chi.Router) {
			handlers.AssetRouter(r, assetStore, int64(cfg.Catalog.MaxInlineImageBytes), authHandler)
		})
	}

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
		publisher:  publisher,
		log:        log,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

func newCredentialService(dbConn *sql.DB, cfg config.AuthConfig) (credentials.Service, error) {
	switch cfg.Backend {
	case config.AuthBackendLocal:
		return credentials.NewLocalService(dbConn, cfg.JWTSecret, cfg.TokenTTL, cfg.RequireConfirmation)
	case config.AuthBackendGoTrue:
		return credentials.NewGoTrueService(cfg.GoTrueURL, cfg.GoTrueAPIKey)
	default:
		return nil, fmt.Errorf("unknown auth backend %q", cfg.Backend)
	}
}

func newPublisher(ctx context.Context, cfg config.EventsConfig) (*events.Publisher, error) {
	var backend events.Backend
	var err error

	switch cfg.Backend {
	case config.EventsBackendNone, "":
		return nil, nil
	case config.EventsBackendRabbitMQ:
		backend, err = events.NewRabbitMQBackend(cfg.RabbitMQ)
	case config.EventsBackendPubSub:
		backend, err = events.NewPubSubBackend(ctx, cfg.PubSub)
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return events.NewPublisher(backend, cfg.Channel), nil
}

func newAssetStore(ctx context.Context, cfg config.AssetsConfig) (*assets.Store, error) {
	var backend assets.ObjectStorage
	var err error

	switch cfg.Backend {
	case config.AssetsBackendNone, "":
		return nil, nil
	case config.AssetsBackendMinio:
		backend, err = assets.NewMinioBackend(cfg.Minio)
	case config.AssetsBackendGCS:
		backend, err = assets.NewGCSBackend(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown assets backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return assets.NewStore(backend, cfg.PublicBaseURL), nil
}
