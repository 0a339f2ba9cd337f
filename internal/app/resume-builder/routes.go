// Package resumebuilder собирает основное HTTP-приложение конструктора резюме:
// сервисы, маршруты и сервер с graceful shutdown.
package resumebuilder

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/config"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/admin/deactivate"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/admin/listusers"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/admin/updaterole"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/admin/upserttemplate"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/analytics/summary"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/billing/upgrade"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/billing/webhook"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/dashboard"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/health"
	moderationlist "github.com/magabrotheeeer/resume-builder/internal/http/handlers/moderation/list"
	profileread "github.com/magabrotheeeer/resume-builder/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/resume-builder/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/resume/create"
	resumelist "github.com/magabrotheeeer/resume-builder/internal/http/handlers/resume/list"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/resume/read"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/resume/remove"
	"github.com/magabrotheeeer/resume-builder/internal/http/handlers/resume/update"
	templatelist "github.com/magabrotheeeer/resume-builder/internal/http/handlers/template/list"
	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-builder/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/resume-builder/internal/services/auth"
	billingservice "github.com/magabrotheeeer/resume-builder/internal/services/billing"
	profileservice "github.com/magabrotheeeer/resume-builder/internal/services/profile"
	resumeservice "github.com/magabrotheeeer/resume-builder/internal/services/resume"
	templateservice "github.com/magabrotheeeer/resume-builder/internal/services/template"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

// Services объединяет зависимости маршрутов приложения.
type Services struct {
	Auth     *authservice.AuthService
	Profiles *profileservice.ProfileService
	Resumes  *resumeservice.ResumeService
	Template *templateservice.TemplateService
	Billing  *billingservice.BillingService
	Sessions *session.Store
	Tokens   jwt.Maker
	Resolver *authz.Resolver
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	gate := middlewarectx.NewGate(logger, s.Sessions, s.Profiles, s.Resolver, cfg.SafeRoute)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
	r.Post("/login", login.New(logger, s.Auth, s.Sessions, s.Resolver).ServeHTTP)
	r.Post("/logout", logout.New(logger, s.Sessions).ServeHTTP)
	r.Post("/billing/webhook", webhook.New(logger, s.Billing, cfg.WebhookSecret).ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	// Группа с cookie-аутентификацией и шлюзом авторизации
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.CookieAuth(s.Sessions, s.Tokens, logger, cfg.LoginRoute))
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		r.Group(func(r chi.Router) {
			r.Use(gate.Authenticated())
			r.Get("/dashboard", dashboard.New(logger, s.Profiles, s.Resumes, s.Resolver).ServeHTTP)
			r.Get("/profile", profileread.New(logger, s.Profiles, s.Resolver).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, s.Profiles).ServeHTTP)
			r.Get("/templates", templatelist.New(logger, s.Template).ServeHTTP)
			r.Post("/billing/upgrade", upgrade.New(logger, s.Billing).ServeHTTP)

			r.Post("/resumes", create.New(logger, s.Resumes).ServeHTTP)
			r.Get("/resumes", resumelist.New(logger, s.Resumes).ServeHTTP)
			r.Get("/resumes/{id}", read.New(logger, s.Resumes).ServeHTTP)
			r.Put("/resumes/{id}", update.New(logger, s.Resumes).ServeHTTP)
			r.Delete("/resumes/{id}", remove.New(logger, s.Resumes).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAnyPermission(authz.PermAnalyticsOwn, authz.PermAnalyticsAll))
			r.Get("/analytics", summary.New(logger, s.Resumes).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAnyPermission(authz.PermModerationReview, authz.PermModerationRemove))
			r.Get("/moderation/resumes", moderationlist.New(logger, s.Resumes).ServeHTTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireRole(authz.RoleAdmin))
			r.Get("/admin/users", listusers.New(logger, s.Profiles).ServeHTTP)
			r.Patch("/admin/users/{uid}/role", updaterole.New(logger, s.Profiles).ServeHTTP)
			r.Delete("/admin/users/{uid}", deactivate.New(logger, s.Profiles).ServeHTTP)
			r.Post("/admin/templates", upserttemplate.New(logger, s.Template).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
