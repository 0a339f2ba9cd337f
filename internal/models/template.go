package models

// Template описывает шаблон оформления резюме.
// Поле Tier определяет минимальный уровень доступа:
// basic — доступен всем, premium и enterprise — по тарифному плану.
type Template struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Tier       string `json:"tier"`
	PreviewURL string `json:"preview_url"`
	IsActive   bool   `json:"is_active"`
}
