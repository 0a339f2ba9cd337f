// Package upserttemplate реализует HTTP-обработчик создания и обновления
// шаблона резюме администратором.
package upserttemplate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// Request описывает шаблон для создания или обновления.
type Request struct {
	ID         int    `json:"id"`
	Name       string `json:"name" validate:"required,min=3,max=100"`
	Tier       string `json:"tier" validate:"required,oneof=basic premium enterprise"`
	PreviewURL string `json:"preview_url" validate:"omitempty,url"`
	IsActive   bool   `json:"is_active"`
}

// Handler обрабатывает запросы создания и обновления шаблонов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики шаблонов.
type Service interface {
	Upsert(ctx context.Context, t models.Template) (int, error)
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
// @Summary Создать или обновить шаблон
// @Description Сохраняет шаблон резюме с указанным тиром доступа.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param template body Request true "Данные шаблона"
// @Success 200 {object} map[string]any "Идентификатор шаблона"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/templates [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.upserttemplate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	err := render.DecodeJSON(r.Body, &req)
	if errors.Is(err, io.EOF) {
		log.Error("request body is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("empty request"))
		return
	}
	if err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validateErrs validator.ValidationErrors
		errors.As(err, &validateErrs)
		log.Error("invalid request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErrs))
		return
	}

	id, err := h.service.Upsert(r.Context(), models.Template{
		ID:         req.ID,
		Name:       req.Name,
		Tier:       req.Tier,
		PreviewURL: req.PreviewURL,
		IsActive:   req.IsActive,
	})
	if err != nil {
		log.Error("failed to upsert template", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save template"))
		return
	}

	log.Info("template saved", slog.Int("template_id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"template_id": id,
	}))
}
