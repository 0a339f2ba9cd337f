// Package listusers реализует HTTP-обработчик списка пользователей
// для администратора.
package listusers

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

// Handler обрабатывает запросы списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// userView — представление пользователя в ответе без хэша пароля.
type userView struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Plan     string `json:"plan"`
	Active   bool   `json:"active"`
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает пользователей с пагинацией. Доступно только администратору.
// @Tags Admin
// @Produce  json
// @Param limit query int false "Размер страницы" default(10)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.listusers"

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

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{
			UID:      u.UID,
			Email:    u.Email,
			Username: u.Username,
			Role:     u.Role,
			Plan:     u.Plan,
			Active:   u.Active,
		})
	}

	log.Info("users listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": views,
		"count": len(views),
	}))
}
