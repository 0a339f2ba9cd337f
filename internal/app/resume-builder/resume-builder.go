package resumebuilder

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/cache"
	"github.com/magabrotheeeer/resume-builder/internal/config"
	"github.com/magabrotheeeer/resume-builder/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-builder/internal/migrations"
	"github.com/magabrotheeeer/resume-builder/internal/paymentprovider"
	authservice "github.com/magabrotheeeer/resume-builder/internal/services/auth"
	billingservice "github.com/magabrotheeeer/resume-builder/internal/services/billing"
	profileservice "github.com/magabrotheeeer/resume-builder/internal/services/profile"
	resumeservice "github.com/magabrotheeeer/resume-builder/internal/services/resume"
	templateservice "github.com/magabrotheeeer/resume-builder/internal/services/template"
	"github.com/magabrotheeeer/resume-builder/internal/session"
	"github.com/magabrotheeeer/resume-builder/internal/storage"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	sessions := session.NewStore(cfg.SessionTTL, cfg.RefreshAfter, cfg.SecureCookie, nil)
	resolver := authz.NewResolver(nil)

	authService := authservice.NewAuthService(db, jwtMaker)
	profileService := profileservice.NewProfileService(db, cacheRedis, logger)
	resumeService := resumeservice.NewResumeService(db, cacheRedis, logger)
	templateService := templateservice.NewTemplateService(db, logger)

	providerClient := paymentprovider.NewClient(cfg.ShopID, cfg.SecretKey, cfg.APIURL)
	billingService := billingservice.NewBillingService(db, db, profileService, providerClient,
		resolver, cfg.ReturnURL, logger, nil)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, Services{
		Auth:     authService,
		Profiles: profileService,
		Resumes:  resumeService,
		Template: templateService,
		Billing:  billingService,
		Sessions: sessions,
		Tokens:   jwtMaker,
		Resolver: resolver,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.Close(); closeErr != nil {
			a.logger.Error("failed to close storage", slog.Any("err", closeErr))
		}
		return err
	}
}
