// Package middlewarectx содержит HTTP middleware авторизации:
// установление личности по cookie аутентификации и шлюз проверки прав
// с клиентским кешем сессии.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/resume-builder/internal/lib/jwt"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

// TokenParser описывает интерфейс проверки токена аутентификации.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// CookieAuth возвращает middleware, устанавливающий личность пользователя.
//
// Токен берётся из cookie аутентификации, при её отсутствии — из заголовка
// Authorization. Невалидный или отсутствующий токен завершает запрос
// редиректом на страницу входа: для защищённых страниц отсутствие
// аутентификации — не ошибка, а переход к входу.
func CookieAuth(sessions *session.Store, tokens TokenParser, log *slog.Logger, loginRoute string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.CookieAuth"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr := ""
			if payload := sessions.ReadAuthCookie(r); payload != nil {
				tokenStr = payload.Token
			} else if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}

			if tokenStr == "" {
				log.Info("no auth token, redirecting to login")
				sessions.Clear(w)
				sessions.ClearAuthCookie(w)
				http.Redirect(w, r, loginRoute, http.StatusSeeOther)
				return
			}

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				sessions.Clear(w)
				sessions.ClearAuthCookie(w)
				http.Redirect(w, r, loginRoute, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, Role, claims.Role)
			ctx = context.WithValue(ctx, UserUID, claims.UserUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
