// Package deactivate реализует HTTP-обработчик деактивации учётной записи.
package deactivate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
)

// Handler обрабатывает запросы на деактивацию пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс деактивации учётной записи.
type Service interface {
	Deactivate(ctx context.Context, userUID string) (int64, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Деактивировать пользователя
// @Description Помечает учётную запись неактивной, данные не удаляются.
// @Tags Admin
// @Produce  json
// @Param uid path string true "UID пользователя"
// @Success 200 {object} map[string]any "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Пустой UID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/{uid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.deactivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")
	if userUID == "" {
		log.Error("user uid is missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("user uid is required"))
		return
	}

	counter, err := h.service.Deactivate(r.Context(), userUID)
	if err != nil {
		log.Error("failed to deactivate user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not deactivate user"))
		return
	}

	log.Info("user deactivated", slog.String("user_uid", userUID), slog.Int64("updated_count", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": counter,
	}))
}
