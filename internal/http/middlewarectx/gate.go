package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/response"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

var authzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "resume_builder_authz_decisions_total",
	Help: "Authorization gate decisions by outcome.",
}, []string{"outcome"})

// ProfileProvider описывает контракт загрузки профиля из источника истины.
type ProfileProvider interface {
	GetByUserUID(ctx context.Context, userUID string) (*models.User, error)
}

// Gate — шлюз авторизации защищённых маршрутов. Проверяет права на каждом
// запросе, используя кеш сессии как быстрый путь и хранилище профилей как
// источник истины.
//
// Политика отказов: нет личности — редирект на вход; прав недостаточно или
// профиль не загрузился — редирект на безопасный маршрут по умолчанию,
// без страницы ошибки. Исключение — отменённые запросы: они не являются
// отказом авторизации и получают пустой деградированный ответ.
type Gate struct {
	log      *slog.Logger
	sessions *session.Store
	profiles ProfileProvider
	resolver *authz.Resolver
	safePath string
}

// NewGate создает Gate с заданными кешем сессии, поставщиком профилей,
// резолвером прав и безопасным маршрутом для отказов.
func NewGate(log *slog.Logger, sessions *session.Store, profiles ProfileProvider, resolver *authz.Resolver, safePath string) *Gate {
	return &Gate{
		log:      log,
		sessions: sessions,
		profiles: profiles,
		resolver: resolver,
		safePath: safePath,
	}
}

// errDegraded сигнализирует, что запрос был отменён более новым
// и ответ уже записан.
var errDegraded = errors.New("request superseded")

// resolve возвращает запись сессии и эффективный набор прав пользователя.
//
// Свежая запись кеша используется без обращения к хранилищу. Отсутствующая,
// просроченная или подлежащая обновлению запись приводит к загрузке профиля
// и пересохранению кеша.
func (g *Gate) resolve(w http.ResponseWriter, r *http.Request, log *slog.Logger) (*session.Record, authz.Set, error) {
	userUID, _ := r.Context().Value(UserUID).(string)

	rec := g.sessions.Load(w, r)
	if rec != nil && rec.UserID == userUID && !g.sessions.ShouldRefresh(rec) {
		return rec, permissionsFromRecord(rec), nil
	}

	user, err := g.profiles.GetByUserUID(r.Context(), userUID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Запрос вытеснен более новым: это не отказ авторизации,
			// отдаем пустой ответ, чтобы клиент мог повторить
			log.Info("profile fetch superseded", sl.Err(err))
			render.JSON(w, r, response.OKWithData(nil))
			return nil, nil, errDegraded
		}
		return nil, nil, err
	}

	fresh := g.recordFromUser(user)
	if err := g.sessions.Save(w, fresh); err != nil {
		log.Warn("failed to save session cache", sl.Err(err))
	}
	return &fresh, g.resolver.EffectivePermissions(user), nil
}

// recordFromUser строит запись кеша из профиля. План складывается в запись
// уже с учётом активности: просроченный платный план записывается как free,
// поэтому быстрый путь не обязан знать дату истечения.
func (g *Gate) recordFromUser(u *models.User) session.Record {
	plan := u.Plan
	if !g.resolver.IsPlanActive(u) {
		plan = string(authz.PlanFree)
	}
	return session.Record{
		UserID:    u.UID,
		Email:     u.Email,
		Name:      u.Username,
		Role:      u.Role,
		Plan:      plan,
		ProfileID: u.UID,
	}
}

func permissionsFromRecord(rec *session.Record) authz.Set {
	return authz.RolePermissions(authz.Role(rec.Role)).
		Union(authz.PlanPermissions(authz.Plan(rec.Plan)))
}

// guard оборачивает обработчик проверкой check над записью и правами.
func (g *Gate) guard(name string, check func(rec *session.Record, perms authz.Set) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Gate"
			log := g.log.With(
				slog.String("op", op),
				slog.String("requirement", name),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			rec, perms, err := g.resolve(w, r, log)
			if err != nil {
				if errors.Is(err, errDegraded) {
					return
				}
				// Любая другая ошибка загрузки профиля фатальна для запроса
				// и трактуется как отказ, чтобы не раскрывать детали
				log.Error("failed to resolve profile", sl.Err(err))
				authzDecisions.WithLabelValues("error").Inc()
				http.Redirect(w, r, g.safePath, http.StatusSeeOther)
				return
			}

			if !check(rec, perms) {
				log.Info("access denied", slog.String("role", rec.Role), slog.String("plan", rec.Plan))
				authzDecisions.WithLabelValues("denied").Inc()
				http.Redirect(w, r, g.safePath, http.StatusSeeOther)
				return
			}

			authzDecisions.WithLabelValues("allowed").Inc()
			ctx := context.WithValue(r.Context(), Session, rec)
			ctx = context.WithValue(ctx, Permissions, perms)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission пропускает запрос, только если эффективный набор прав
// содержит указанное право.
func (g *Gate) RequirePermission(perm authz.Permission) func(http.Handler) http.Handler {
	return g.guard(string(perm), func(_ *session.Record, perms authz.Set) bool {
		return perms.Has(perm)
	})
}

// RequireAnyPermission пропускает запрос при наличии хотя бы одного из прав.
func (g *Gate) RequireAnyPermission(required ...authz.Permission) func(http.Handler) http.Handler {
	return g.guard("any", func(_ *session.Record, perms authz.Set) bool {
		for _, p := range required {
			if perms.Has(p) {
				return true
			}
		}
		return false
	})
}

// RequireRole пропускает запрос только при точном совпадении роли.
func (g *Gate) RequireRole(role authz.Role) func(http.Handler) http.Handler {
	return g.guard(string(role), func(rec *session.Record, _ authz.Set) bool {
		return authz.Role(rec.Role) == role
	})
}

// Authenticated пропускает любой аутентифицированный запрос,
// подтягивая запись сессии и права в контекст.
func (g *Gate) Authenticated() func(http.Handler) http.Handler {
	return g.guard("authenticated", func(_ *session.Record, _ authz.Set) bool {
		return true
	})
}
