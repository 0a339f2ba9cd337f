package paymentprovider

// Amount — сумма платежа.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// Confirmation — способ подтверждения платежа пользователем.
type Confirmation struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
	// ConfirmationURL заполняется провайдером в ответе
	ConfirmationURL string `json:"confirmation_url,omitempty"`
}

// CreatePaymentRequest — запрос на создание платежа за апгрейд плана.
type CreatePaymentRequest struct {
	Amount       Amount            `json:"amount"`
	Capture      bool              `json:"capture"`
	Confirmation Confirmation      `json:"confirmation"`
	Description  string            `json:"description"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// CreatePaymentResponse — ответ провайдера на создание платежа.
type CreatePaymentResponse struct {
	ID           string       `json:"id"`
	Status       string       `json:"status"`
	Paid         bool         `json:"paid"`
	Amount       Amount       `json:"amount"`
	Confirmation Confirmation `json:"confirmation"`
}

// WebhookNotification — уведомление провайдера об изменении статуса платежа.
type WebhookNotification struct {
	Type   string        `json:"type"`
	Event  string        `json:"event"`
	Object WebhookObject `json:"object"`
}

// WebhookObject — объект платежа внутри webhook-уведомления.
type WebhookObject struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Paid     bool              `json:"paid"`
	Amount   Amount            `json:"amount"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Статусы платежа провайдера.
const (
	StatusPending   = "pending"
	StatusSucceeded = "succeeded"
	StatusCanceled  = "canceled"
)

// EventPaymentSucceeded — событие успешной оплаты в webhook-уведомлении.
const EventPaymentSucceeded = "payment.succeeded"
