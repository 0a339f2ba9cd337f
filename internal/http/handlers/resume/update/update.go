// Package update реализует HTTP-обработчик обновления резюме.
//
// Владелец обновляет своё резюме; право модерации позволяет
// редактировать чужое. Публичный слаг при обновлении сохраняется.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	resumesvc "github.com/magabrotheeeer/resume-builder/internal/services/resume"
)

// Handler обрабатывает запросы на обновление резюме.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления резюме.
type Service interface {
	Update(ctx context.Context, id int, userUID string, override bool, req models.DummyResume) (int64, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить резюме
// @Description Обновляет резюме по ID. Чужое резюме доступно только с правом модерации.
// @Tags Resumes
// @Accept  json
// @Produce  json
// @Param id path int true "ID резюме"
// @Param request body models.DummyResume true "Новые данные резюме"
// @Success 200 {object} map[string]any "Количество обновлённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 403 {object} response.ErrorResponse "Резюме принадлежит другому пользователю"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /resumes/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyResume
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	perms, _ := r.Context().Value(middlewarectx.Permissions).(authz.Set)
	override := perms.Has(authz.PermModerationRemove)

	counter, err := h.service.Update(r.Context(), id, userUID, override, req)
	if err != nil {
		if errors.Is(err, resumesvc.ErrNotOwner) {
			log.Info("update of foreign resume denied", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("resume belongs to another user"))
			return
		}
		log.Error("failed to update resume", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update resume"))
		return
	}

	log.Info("resume updated", slog.Int64("updated_count", counter))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"updated_count": counter,
	}))
}
