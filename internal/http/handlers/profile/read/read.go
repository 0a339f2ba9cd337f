// Package read реализует HTTP-обработчик чтения профиля
// текущего пользователя.
package read

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

// Handler обрабатывает запросы профиля текущего пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	resolver *authz.Resolver
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	GetByUserUID(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service, resolver *authz.Resolver) *Handler {
	return &Handler{log: log, service: service, resolver: resolver}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль, план и эффективные права авторизованного пользователя.
// @Tags Profile
// @Produce  json
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)

	user, err := h.service.GetByUserUID(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read profile"))
		return
	}

	plan := user.Plan
	if !h.resolver.IsPlanActive(user) {
		plan = string(authz.PlanFree)
	}

	perms := h.resolver.EffectivePermissions(user)

	data := map[string]any{
		"uid":         user.UID,
		"email":       user.Email,
		"username":    user.Username,
		"role":        user.Role,
		"plan":        plan,
		"permissions": perms.Strings(),
	}
	if days, ok := h.resolver.DaysUntilExpiry(user); ok {
		data["plan_expires_in_days"] = days
	}

	log.Info("profile read", slog.String("user_uid", userUID))
	render.JSON(w, r, response.OKWithData(data))
}
