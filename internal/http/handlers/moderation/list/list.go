// Package list реализует HTTP-обработчик очереди модерации:
// список резюме всех пользователей.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// Handler обрабатывает запросы очереди модерации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	ListAll(ctx context.Context, limit, offset int) ([]*models.Resume, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Очередь модерации
// @Description Возвращает резюме всех пользователей с пагинацией. Доступно модератору и администратору.
// @Tags Moderation
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список резюме"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /moderation/resumes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	resumes, err := h.service.ListAll(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list resumes for moderation", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list resumes"))
		return
	}

	log.Info("moderation queue listed", slog.Int("count", len(resumes)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	}))
}
