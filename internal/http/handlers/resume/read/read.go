// Package read реализует HTTP-обработчик получения резюме по ID.
//
// Чужое резюме доступно с правом модерации либо когда оно публичное.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	resumesvc "github.com/magabrotheeeer/resume-builder/internal/services/resume"
)

// Handler обрабатывает запросы на получение резюме по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения резюме.
type Service interface {
	Read(ctx context.Context, id int, userUID string, override bool) (*models.Resume, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить резюме по ID
// @Description Возвращает резюме. Чужое резюме доступно с правом модерации либо когда оно публичное.
// @Tags Resumes
// @Produce  json
// @Param id path int true "ID резюме"
// @Success 200 {object} map[string]any "Данные резюме"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Резюме принадлежит другому пользователю"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /resumes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	perms, _ := r.Context().Value(middlewarectx.Permissions).(authz.Set)
	override := perms.Has(authz.PermModerationReview)

	res, err := h.service.Read(r.Context(), id, userUID, override)
	if err != nil {
		if errors.Is(err, resumesvc.ErrNotOwner) {
			log.Info("access to foreign resume denied", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("resume belongs to another user"))
			return
		}
		log.Error("failed to read resume", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read resume"))
		return
	}

	log.Info("resume read", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"resume": res,
	}))
}
