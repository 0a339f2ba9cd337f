// Package summary реализует HTTP-обработчик сводной аналитики по резюме.
//
// Охват сводки зависит от прав: analytics.all даёт счётчики по всей
// системе, analytics.own — только по резюме текущего пользователя.
package summary

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
)

// Handler обрабатывает запросы сводной аналитики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс подсчёта резюме.
type Service interface {
	CountByUser(ctx context.Context, userUID string) (int, error)
	CountAll(ctx context.Context) (int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Сводная аналитика
// @Description Возвращает счётчики резюме. С правом analytics.all охват — вся система, иначе только резюме пользователя.
// @Tags Analytics
// @Produce  json
// @Success 200 {object} map[string]any "Счётчики и охват"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /analytics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	perms, _ := r.Context().Value(middlewarectx.Permissions).(authz.Set)

	scope := "own"
	var (
		count int
		err   error
	)
	if perms.Has(authz.PermAnalyticsAll) {
		scope = "all"
		count, err = h.service.CountAll(r.Context())
	} else {
		count, err = h.service.CountByUser(r.Context(), userUID)
	}
	if err != nil {
		log.Error("failed to count resumes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build analytics summary"))
		return
	}

	log.Info("analytics summary built", slog.String("scope", scope), slog.Int("resume_count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"scope":        scope,
		"resume_count": count,
	}))
}
