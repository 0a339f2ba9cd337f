package models

import "time"

// PlanPayment представляет платёж за апгрейд тарифного плана.
type PlanPayment struct {
	ID                int       `json:"id"`
	UserUID           string    `json:"user_uid"`
	ProviderPaymentID string    `json:"provider_payment_id"`
	Plan              string    `json:"plan"`
	Amount            int       `json:"amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// PlanExpiryInfo содержит данные для уведомления об истекающем плане.
// Передаётся через очередь сообщений сервису рассылки.
type PlanExpiryInfo struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Plan        string    `json:"plan"`
	PlanExpires time.Time `json:"plan_expires"`
}
