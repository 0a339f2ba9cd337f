// Package login реализует HTTP-обработчик входа пользователей.
//
// При успешной аутентификации выставляются две cookie: cookie
// аутентификации с токеном и снимком модели на 7 дней и cookie
// кеша сессии с ролью и планом на час.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

// Request — структура входных данных для входа.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions SessionWriter
	resolver *authz.Resolver
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// SessionWriter записывает cookie аутентификации и кеша сессии.
type SessionWriter interface {
	WriteAuthCookie(w http.ResponseWriter, payload session.AuthPayload) error
	Save(w http.ResponseWriter, rec session.Record) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions SessionWriter, resolver *authz.Resolver) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		resolver: resolver,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Аутентифицирует пользователя по имени и паролю, выставляет cookie аутентификации и кеша сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} map[string]any "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	token, user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("invalid credentials"))
		return
	}

	if err := h.sessions.WriteAuthCookie(w, session.AuthPayload{
		Token: token,
		Model: session.AuthModel{
			UID:      user.UID,
			Email:    user.Email,
			Username: user.Username,
			Role:     user.Role,
		},
	}); err != nil {
		log.Error("failed to write auth cookie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	// Просроченный платный план записывается в кеш как free
	plan := user.Plan
	if !h.resolver.IsPlanActive(user) {
		plan = string(authz.PlanFree)
	}
	if err := h.sessions.Save(w, session.Record{
		UserID:    user.UID,
		Email:     user.Email,
		Name:      user.Username,
		Role:      user.Role,
		Plan:      plan,
		ProfileID: user.UID,
	}); err != nil {
		log.Warn("failed to save session cache", sl.Err(err))
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token":    token,
		"role":     user.Role,
		"plan":     plan,
		"username": user.Username,
	}))
}
