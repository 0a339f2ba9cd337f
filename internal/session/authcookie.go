package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// AuthCookieName — имя cookie токена аутентификации.
const AuthCookieName = "rb_auth"

// AuthTTL — время жизни токена аутентификации,
// отдельное от часового TTL кеша сессии.
const AuthTTL = 7 * 24 * time.Hour

// AuthPayload — содержимое cookie аутентификации: непрозрачный токен
// и снимок модели пользователя на момент входа.
type AuthPayload struct {
	Token string    `json:"token"`
	Model AuthModel `json:"model"`
}

// AuthModel — снимок учётной записи, сохранённый при входе.
type AuthModel struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// WriteAuthCookie сохраняет токен и снимок модели в cookie на 7 дней.
func (s *Store) WriteAuthCookie(w http.ResponseWriter, payload AuthPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   int(AuthTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// ReadAuthCookie возвращает содержимое cookie аутентификации
// или nil, если cookie отсутствует или не разбирается.
func (s *Store) ReadAuthCookie(r *http.Request) *AuthPayload {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var payload AuthPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return &payload
}

// ClearAuthCookie удаляет cookie аутентификации.
func (s *Store) ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
