// Package list реализует HTTP-обработчик каталога шаблонов резюме.
//
// Состав каталога определяется эффективным набором прав пользователя:
// уровни шаблонов выводятся из прав, а не из названия плана, поэтому
// enterprise-план и admin-роль одинаково открывают премиум-шаблоны.
package list

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
)

// Handler обрабатывает запросы каталога шаблонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога шаблонов.
type Service interface {
	ListForPermissions(ctx context.Context, perms authz.Set) ([]*models.Template, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Каталог шаблонов
// @Description Возвращает шаблоны, доступные текущему пользователю по его правам.
// @Tags Templates
// @Produce  json
// @Success 200 {object} map[string]any "Список шаблонов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /templates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.template.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	perms, _ := r.Context().Value(middlewarectx.Permissions).(authz.Set)

	templates, err := h.service.ListForPermissions(r.Context(), perms)
	if err != nil {
		log.Error("failed to list templates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list templates"))
		return
	}

	log.Info("templates listed", slog.Int("count", len(templates)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"templates": templates,
	}))
}
