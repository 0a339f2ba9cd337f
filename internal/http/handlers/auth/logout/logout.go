// Package logout реализует HTTP-обработчик выхода: удаляет cookie
// аутентификации и кеша сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/resume-builder/internal/http/response"
)

// SessionCleaner удаляет cookie аутентификации и кеша сессии.
type SessionCleaner interface {
	Clear(w http.ResponseWriter)
	ClearAuthCookie(w http.ResponseWriter)
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log      *slog.Logger
	sessions SessionCleaner
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions SessionCleaner) *Handler {
	return &Handler{log: log, sessions: sessions}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет cookie аутентификации и кеша сессии. Идемпотентен.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Успешный выход"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	h.sessions.Clear(w)
	h.sessions.ClearAuthCookie(w)

	log.Info("user logged out")
	render.JSON(w, r, response.OK())
}
