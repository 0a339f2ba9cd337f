package authz

import (
	"math"
	"time"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// Resolver вычисляет эффективный набор прав пользователя:
// права роли плюс права активного тарифного плана.
// Часы инъектируются для детерминированных тестов.
type Resolver struct {
	now func() time.Time
}

// NewResolver создает Resolver с заданным источником времени.
// При nil используется time.Now.
func NewResolver(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// IsPlanActive сообщает, действует ли тарифный план пользователя.
// free активен всегда. Платный план активен, только если дата истечения
// задана и строго в будущем: платный план без даты считается неактивным.
func (r *Resolver) IsPlanActive(u *models.User) bool {
	if u == nil {
		return false
	}
	if Plan(u.Plan) == PlanFree {
		return true
	}
	if u.PlanExpires == nil {
		return false
	}
	return u.PlanExpires.After(r.now())
}

// EffectivePermissions возвращает объединение прав роли и, если план
// активен, прав плана. Для nil-пользователя — пустой набор.
// Набор вычисляется по запросу и нигде не сохраняется.
func (r *Resolver) EffectivePermissions(u *models.User) Set {
	if u == nil {
		return NewSet()
	}
	perms := RolePermissions(Role(u.Role))
	if r.IsPlanActive(u) {
		perms = perms.Union(PlanPermissions(Plan(u.Plan)))
	}
	return perms
}

// HasPermission проверяет наличие одного права. nil-пользователь — всегда false.
func (r *Resolver) HasPermission(u *models.User, p Permission) bool {
	return r.EffectivePermissions(u).Has(p)
}

// HasAnyPermission проверяет наличие хотя бы одного из перечисленных прав.
func (r *Resolver) HasAnyPermission(u *models.User, perms ...Permission) bool {
	effective := r.EffectivePermissions(u)
	for _, p := range perms {
		if effective.Has(p) {
			return true
		}
	}
	return false
}

// HasAllPermissions проверяет наличие всех перечисленных прав.
func (r *Resolver) HasAllPermissions(u *models.User, perms ...Permission) bool {
	effective := r.EffectivePermissions(u)
	for _, p := range perms {
		if !effective.Has(p) {
			return false
		}
	}
	return true
}

// HasRole проверяет точное совпадение роли, без учёта иерархии:
// иерархия заложена в таблицу прав, а не в сравнение ролей.
func (r *Resolver) HasRole(u *models.User, role Role) bool {
	if u == nil {
		return false
	}
	return Role(u.Role) == role
}

// DaysUntilExpiry возвращает количество дней до истечения плана,
// округлённое вверх. ok=false, когда дата истечения не задана.
// Для просроченного плана значение отрицательное: решение о даунгрейде
// принимает вызывающая сторона, а не резолвер.
func (r *Resolver) DaysUntilExpiry(u *models.User) (int, bool) {
	if u == nil || u.PlanExpires == nil {
		return 0, false
	}
	diff := u.PlanExpires.Sub(r.now())
	return int(math.Ceil(diff.Hours() / 24)), true
}

// CanUpgradeTo сообщает, может ли пользователь перейти на целевой план.
// Разрешён только переход строго вверх по рангу планов.
func (r *Resolver) CanUpgradeTo(u *models.User, target Plan) bool {
	if u == nil {
		return false
	}
	targetRank, ok := planRank[target]
	if !ok {
		return false
	}
	currentRank, ok := planRank[Plan(u.Plan)]
	if !ok {
		return false
	}
	return targetRank > currentRank
}
