// Package server holds Server, the container for the application's shared
// dependencies, and runs the HTTP server.
//
// It owns the lifecycle of:
//   - configuration, logger and the optional New Relic service
//   - the document store (postgres, firestore or memory)
//   - the redis client and the background job service (asynq)
//   - the asset host and identity provider clients
//   - the http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/database"
	"github.com/deppfellow/wedding-backend/internal/lib/email"
	"github.com/deppfellow/wedding-backend/internal/lib/identity"
	"github.com/deppfellow/wedding-backend/internal/lib/job"
	"github.com/deppfellow/wedding-backend/internal/lib/media"
	"github.com/deppfellow/wedding-backend/internal/repository"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	loggerPkg "github.com/deppfellow/wedding-backend/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// Store persists every document. DB is only set with the postgres driver.
	Store repository.DocumentStore
	DB    *database.Database

	Redis *redis.Client

	// Job is nil when the worker could not be started; callers fall back to
	// doing the work inline.
	Job *job.JobService

	Media    media.Host
	Identity identity.Provider

	httpServer *http.Server
}

// New constructs a Server and connects its dependencies. A redis outage is
// logged and tolerated; every other failure aborts startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := newFirebaseApp(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth: %w", err)
	}

	s := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Identity:      identity.NewFirebase(&cfg.Firebase, authClient, logger),
	}

	if err := s.openStore(ctx, app); err != nil {
		return nil, err
	}

	host, err := media.NewCloudinary(&cfg.Media, logger)
	if err != nil {
		return nil, err
	}
	s.Media = host

	s.Redis = redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService.GetApplication() != nil {
		s.Redis.AddHook(nrredis.NewHook(s.Redis.Options()))
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := s.Redis.Ping(pingCtx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without background jobs")
		return s, nil
	}

	var emailClient *email.Client
	if cfg.RSVPNotificationsEnabled() {
		emailClient = email.NewClient(cfg, logger)
	}

	jobService := job.NewJobService(logger, cfg, emailClient, host)
	if err := jobService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start job server: %w", err)
	}
	s.Job = jobService

	return s, nil
}

func newFirebaseApp(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	return app, nil
}

func (s *Server) openStore(ctx context.Context, app *firebase.App) error {
	switch s.Config.Store.Driver {
	case config.DriverPostgres:
		db, err := database.New(s.Config, s.Logger, s.LoggerService)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		s.DB = db
		s.Store = repository.NewPostgresStore(db)

	case config.DriverFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize firestore: %w", err)
		}
		s.Store = repository.NewFirestoreStore(client)

	case config.DriverMemory:
		s.Logger.Warn().Msg("using the in-memory store, data is lost on restart")
		s.Store = repository.NewMemoryStore()

	default:
		return fmt.Errorf("unknown store driver %q", s.Config.Store.Driver)
	}

	s.Logger.Info().Str("driver", s.Config.Store.Driver).Msg("document store ready")

	return nil
}

// SetupHTTPServer configures the net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown drains HTTP, then stops the workers and closes connections.
// It keeps going after a failure and returns every error it met.
func (s *Server) Shutdown(ctx context.Context) error {
	var errList []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errList = append(errList, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close redis: %w", err))
		}
	}

	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errList = append(errList, fmt.Errorf("failed to close document store: %w", err))
		}
	}

	return errors.Join(errList...)
}
