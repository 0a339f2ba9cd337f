// Package upgrade реализует HTTP-обработчик запроса апгрейда тарифного плана.
//
// Handler проверяет возможность апгрейда через сервис биллинга,
// создаёт платёж у провайдера и возвращает URL подтверждения оплаты.
package upgrade

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	billingsvc "github.com/magabrotheeeer/resume-builder/internal/services/billing"
)

// Request — структура входных данных для апгрейда.
type Request struct {
	Plan string `json:"plan" validate:"required,oneof=pro enterprise"`
}

// Handler обрабатывает запросы апгрейда плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики апгрейда.
type Service interface {
	CreateUpgrade(ctx context.Context, userUID, targetPlan string) (string, error)
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
// @Summary Апгрейд тарифного плана
// @Description Создает платёж за переход на более высокий план. Возвращает URL подтверждения оплаты.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Param request body Request true "Целевой план"
// @Success 200 {object} map[string]any "URL подтверждения оплаты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 409 {object} response.ErrorResponse "Целевой план не выше текущего"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/upgrade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.upgrade"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("plan", req.Plan))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	confirmationURL, err := h.service.CreateUpgrade(r.Context(), userUID, req.Plan)
	if err != nil {
		if errors.Is(err, billingsvc.ErrUpgradeNotAllowed) {
			log.Info("upgrade rejected", slog.String("plan", req.Plan))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("target plan is not an upgrade"))
			return
		}
		log.Error("failed to create upgrade payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create upgrade payment"))
		return
	}

	log.Info("upgrade payment created", slog.String("plan", req.Plan))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"confirmation_url": confirmationURL,
	}))
}
