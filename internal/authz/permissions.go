// Package authz реализует модель прав доступа: статическую таблицу
// "роль -> права" и "план -> права", а также вычисление эффективного
// набора прав пользователя.
//
// Роли выстроены иерархически: moderator включает все права job_seeker,
// admin — все права moderator. Иерархия задаётся явным объединением
// наборов, а не дублированием списков, поэтому инвариант вложенности
// выполняется структурно.
package authz

import "sort"

// Role — уровень авторизации пользователя, назначается администратором.
type Role string

// Plan — тарифный план подписки, ограничен по времени.
type Plan string

// Permission — атомарный токен права, проверяется перед действием.
type Permission string

// Роли пользователей.
const (
	RoleJobSeeker Role = "job_seeker"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Тарифные планы.
const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Закрытый словарь прав.
const (
	PermResumeCreate Permission = "resume.create"
	PermResumeRead   Permission = "resume.read"
	PermResumeUpdate Permission = "resume.update"
	PermResumeDelete Permission = "resume.delete"
	PermResumeShare  Permission = "resume.share"

	PermTemplateBasic      Permission = "template.basic"
	PermTemplatePremium    Permission = "template.premium"
	PermTemplateEnterprise Permission = "template.enterprise"

	PermExportPDF  Permission = "export.pdf"
	PermExportDOCX Permission = "export.docx"

	PermAnalyticsOwn Permission = "analytics.own"
	PermAnalyticsAll Permission = "analytics.all"

	PermModerationReview Permission = "moderation.review"
	PermModerationRemove Permission = "moderation.remove"

	PermAdminUsers     Permission = "admin.users"
	PermAdminRoles     Permission = "admin.roles"
	PermAdminTemplates Permission = "admin.templates"
)

// Set — множество прав.
type Set map[Permission]struct{}

// NewSet создает множество из перечисленных прав.
func NewSet(perms ...Permission) Set {
	s := make(Set, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has сообщает, входит ли право в множество.
func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Strings возвращает права множества в виде отсортированного среза строк.
func (s Set) Strings() []string {
	res := make([]string, 0, len(s))
	for p := range s {
		res = append(res, string(p))
	}
	sort.Strings(res)
	return res
}

// Union возвращает новое множество — объединение s с переданными множествами.
func (s Set) Union(others ...Set) Set {
	res := make(Set, len(s))
	for p := range s {
		res[p] = struct{}{}
	}
	for _, other := range others {
		for p := range other {
			res[p] = struct{}{}
		}
	}
	return res
}

// Таблица прав. Каждая следующая роль строится объединением с предыдущей,
// это гарантирует инвариант job_seeker ⊆ moderator ⊆ admin.
var (
	jobSeekerPermissions = NewSet(
		PermResumeCreate,
		PermResumeRead,
		PermResumeUpdate,
		PermResumeDelete,
		PermTemplateBasic,
		PermExportPDF,
	)

	moderatorPermissions = jobSeekerPermissions.Union(NewSet(
		PermModerationReview,
		PermModerationRemove,
	))

	adminPermissions = moderatorPermissions.Union(NewSet(
		PermAdminUsers,
		PermAdminRoles,
		PermAdminTemplates,
		PermAnalyticsAll,
	))

	rolePermissions = map[Role]Set{
		RoleJobSeeker: jobSeekerPermissions,
		RoleModerator: moderatorPermissions,
		RoleAdmin:     adminPermissions,
	}
)

// Права планов аддитивны к правам роли и действуют только пока план активен.
var (
	proPermissions = NewSet(
		PermTemplatePremium,
		PermExportDOCX,
		PermResumeShare,
		PermAnalyticsOwn,
	)

	enterprisePermissions = proPermissions.Union(NewSet(
		PermTemplateEnterprise,
		PermAnalyticsAll,
	))

	planPermissions = map[Plan]Set{
		PlanFree:       NewSet(),
		PlanPro:        proPermissions,
		PlanEnterprise: enterprisePermissions,
	}
)

// planRank задаёт порядок планов для проверки апгрейда.
var planRank = map[Plan]int{
	PlanFree:       0,
	PlanPro:        1,
	PlanEnterprise: 2,
}

// RolePermissions возвращает набор прав роли.
// Неизвестная роль даёт пустой набор, а не ошибку.
func RolePermissions(role Role) Set {
	if s, ok := rolePermissions[role]; ok {
		return s
	}
	return NewSet()
}

// PlanPermissions возвращает набор прав тарифного плана.
// Неизвестный план даёт пустой набор, а не ошибку.
func PlanPermissions(plan Plan) Set {
	if s, ok := planPermissions[plan]; ok {
		return s
	}
	return NewSet()
}
