package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gotera/internal/config"
	"gotera/internal/database"
	"gotera/internal/graphql"
	"gotera/internal/handlers"
	"gotera/internal/logger"
	"gotera/internal/metrics"
	"gotera/internal/repository"
	"gotera/internal/security"
	"gotera/internal/service"
	"gotera/internal/session"
	"gotera/internal/validation"
	"gotera/web"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
	cleanupInterval = time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg)
	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	// Session persistence
	persister, closePersister, err := openPersister(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePersister()
	log.Info("Session store ready", "backend", cfg.SessionBackend)

	// GraphQL client
	m := metrics.New()
	client := graphql.NewClient(cfg.GraphQLEndpoint,
		graphql.WithTimeout(cfg.GraphQLTimeout),
		graphql.WithObserver(m),
	)

	// Initialize repositories
	authRepo := repository.NewAuthRepository(client)
	memberRepo := repository.NewMemberRepository(client, cfg.DefaultPageSize)
	familyRepo := repository.NewFamilyRepository(client)
	ministryRepo := repository.NewMinistryRepository(client)
	meetupRepo := repository.NewMeetupRepository(client)
	professionRepo := repository.NewProfessionRepository(client)
	locationRepo := repository.NewLocationRepository(client)
	lookupRepo := repository.NewLookupRepository(client)
	activityRepo := repository.NewActivityRepository(client, cfg.DefaultPageSize)

	// Initialize services
	var mailer service.CredentialsMailer
	emailService, err := service.NewEmailService(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.WithError(err).Warn("Email delivery disabled")
	} else {
		mailer = emailService
	}

	validator := validation.New()
	signer := security.NewSessionSigner(cfg.SessionSecret, cfg.SessionDuration)
	sessions := session.NewManager(persister, authRepo, signer, cfg.SessionDuration)
	go sessions.RunCleanup(ctx, cleanupInterval)

	authService := service.NewAuthService(sessions, validator)
	memberService := service.NewMemberService(memberRepo, mailer, validator)
	attendanceService := service.NewAttendanceService(meetupRepo, validator)

	// Initialize handlers
	middleware := handlers.NewMiddleware(sessions,
		security.NewCSRFGenerator(cfg.SessionSecret),
		security.NewRateLimiter(ctx, loginRateLimit, loginRateWindow),
	)
	templates, err := web.Templates(handlers.TemplateFuncs())
	if err != nil {
		return err
	}
	static, err := web.Static()
	if err != nil {
		return err
	}

	h := handlers.NewHandlers(handlers.Deps{
		Renderer:          handlers.NewRenderer(templates, middleware),
		Middleware:        middleware,
		Validator:         validator,
		PageSize:          cfg.DefaultPageSize,
		AuthService:       authService,
		MemberService:     memberService,
		AttendanceService: attendanceService,
		Members:           memberRepo,
		Families:          familyRepo,
		Ministries:        ministryRepo,
		Meetups:           meetupRepo,
		Professions:       professionRepo,
		Locations:         locationRepo,
		Lookups:           lookupRepo,
		Activity:          activityRepo,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handlers.Logging(log, m)(h.Mount(static, m.Handler())),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "addr", srv.Addr, "graphql", cfg.GraphQLEndpoint)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openPersister opens the configured session backend. The returned func
// releases it.
func openPersister(ctx context.Context, cfg *config.Config) (session.Persister, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return session.NewMemoryPersister(), func() {}, nil

	case config.BackendRedis:
		p, err := session.NewRedisPersister(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				slog.Warn("Failed to close redis", "error", err)
			}
		}, nil

	default:
		db, err := database.OpenWithConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return session.NewSQLPersister(db), func() {
			if err := db.Close(); err != nil {
				slog.Warn("Failed to close database", "error", err)
			}
		}, nil
	}
}
