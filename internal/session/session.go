// Package session реализует клиентский кеш сессии: короткоживущую
// cookie со снимком роли и тарифного плана пользователя. Кеш позволяет
// не обращаться к хранилищу профилей на каждом запросе; каноническое
// состояние авторизации остаётся в базе данных.
//
// Жизненный цикл записи: Absent -> Fresh -> Refresh-Due -> Expired -> Absent.
// Повреждённая или просроченная cookie нормализуется в Absent: кеш
// самоочищается при чтении, отдельного состояния "invalid" нет.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// DefaultTTL — время жизни записи, после которого она считается просроченной.
const DefaultTTL = time.Hour

// DefaultRefreshAfter — возраст записи, после которого вызывающей стороне
// следует перечитать роль и план из хранилища и пересохранить запись.
const DefaultRefreshAfter = 5 * time.Minute

// CookieName — имя cookie клиентского кеша сессии.
const CookieName = "rb_session"

// Record — снимок данных пользователя, хранимый на клиенте.
// Timestamp проставляется при сохранении и определяет возраст записи.
type Record struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	ProfileID string    `json:"profile_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Store управляет cookie кеша сессии. Часы инъектируются для
// детерминированных тестов.
type Store struct {
	ttl          time.Duration
	refreshAfter time.Duration
	secure       bool
	now          func() time.Time
}

// NewStore создает Store с заданными TTL, порогом обновления и источником
// времени. При nil используется time.Now.
func NewStore(ttl, refreshAfter time.Duration, secure bool, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		ttl:          ttl,
		refreshAfter: refreshAfter,
		secure:       secure,
		now:          now,
	}
}

// Save проставляет текущее время в запись и записывает её в cookie.
// Cookie недоступна клиентскому коду, передаётся только по защищённому
// соединению и действует на весь сайт.
func (s *Store) Save(w http.ResponseWriter, rec Record) error {
	rec.Timestamp = s.now()
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Load читает запись из cookie запроса. Повреждённая cookie удаляется
// и трактуется как отсутствующая; просроченная — так же. В остальных
// случаях возвращается запись.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Record {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		s.Clear(w)
		return nil
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		s.Clear(w)
		return nil
	}

	if s.now().Sub(rec.Timestamp) > s.ttl {
		s.Clear(w)
		return nil
	}
	return &rec
}

// Clear удаляет cookie кеша сессии. Идемпотентна.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ShouldRefresh сообщает, старше ли запись порога обновления.
// Запись при этом остаётся пригодной: это сигнал перечитать роль и план
// из источника истины, а не инвалидация.
func (s *Store) ShouldRefresh(rec *Record) bool {
	if rec == nil {
		return true
	}
	return s.now().Sub(rec.Timestamp) > s.refreshAfter
}
