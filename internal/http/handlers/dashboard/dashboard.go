// Package dashboard реализует HTTP-обработчик сводки личного кабинета.
//
// Кабинет — безопасный маршрут по умолчанию: сюда перенаправляются
// запросы, которым не хватило прав. Сводка собирается из записи кеша
// сессии и профиля: роль, план, дни до истечения и счётчик резюме.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

// ProfileService описывает чтение профиля пользователя.
type ProfileService interface {
	GetByUserUID(ctx context.Context, userUID string) (*models.User, error)
}

// ResumeCounter считает резюме пользователя.
type ResumeCounter interface {
	CountByUser(ctx context.Context, userUID string) (int, error)
}

// Handler обрабатывает запросы сводки кабинета.
type Handler struct {
	log      *slog.Logger
	profiles ProfileService
	resumes  ResumeCounter
	resolver *authz.Resolver
}

// New создает новый Handler.
func New(log *slog.Logger, profiles ProfileService, resumes ResumeCounter, resolver *authz.Resolver) *Handler {
	return &Handler{
		log:      log,
		profiles: profiles,
		resumes:  resumes,
		resolver: resolver,
	}
}

// ServeHTTP godoc
// @Summary Сводка личного кабинета
// @Description Возвращает роль, план, дни до истечения плана и количество резюме текущего пользователя.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Сводка кабинета"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	rec, ok := r.Context().Value(middlewarectx.Session).(*session.Record)
	if !ok || rec == nil {
		log.Error("session record not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	summary := map[string]any{
		"username": rec.Name,
		"role":     rec.Role,
		"plan":     rec.Plan,
	}

	user, err := h.profiles.GetByUserUID(r.Context(), rec.UserID)
	if err != nil {
		log.Warn("failed to load profile for summary", sl.Err(err))
	} else if days, ok := h.resolver.DaysUntilExpiry(user); ok {
		summary["plan_expires_in_days"] = days
	}

	count, err := h.resumes.CountByUser(r.Context(), rec.UserID)
	if err != nil {
		log.Warn("failed to count resumes", sl.Err(err))
	} else {
		summary["resume_count"] = count
	}

	log.Info("dashboard summary built", slog.String("user_uid", rec.UserID))
	render.JSON(w, r, response.OKWithData(summary))
}
