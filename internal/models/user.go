// Package models содержит доменную модель пользователя системы:
// учётные данные, роль авторизации и состояние тарифного плана.
// Роль и план — независимые оси: роль назначается администратором,
// план меняется при оплате, даунгрейде или истечении срока.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID           string     // Уникальный идентификатор пользователя
	Email         string     // Электронная почта
	Username      string     // Имя пользователя (уникальное)
	PasswordHash  string     // Хэш пароля пользователя
	Role          string     // Роль: job_seeker, moderator или admin
	Plan          string     // Тарифный план: free, pro или enterprise
	PlanExpires   *time.Time // Дата истечения оплаченного плана, nil для free
	PlanPaymentID string     // Идентификатор платежа, которым оплачен план
	Active        bool       // Активна ли учётная запись
	Verified      bool       // Подтверждена ли электронная почта
	CreatedAt     time.Time
}
