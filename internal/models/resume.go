// Package models содержит доменные структуры резюме,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"encoding/json"
	"time"
)

// Resume представляет собой основную модель резюме,
// используемую в бизнес-логике и хранилище.
// Поле Content хранит произвольную структуру секций резюме как JSON.
type Resume struct {
	ID         int             // Идентификатор записи
	UserUID    string          // Владелец резюме
	Title      string          // Название резюме
	Slug       string          // Публичный слаг для ссылок общего доступа
	TemplateID int             // Идентификатор шаблона оформления
	Content    json.RawMessage // Секции резюме (опыт, образование, навыки)
	IsPublic   bool            // Доступно ли резюме по публичной ссылке
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DummyResume используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Resume.
type DummyResume struct {
	Title      string          `json:"title" validate:"required"`       // Название резюме
	TemplateID int             `json:"template_id" validate:"required"` // Шаблон оформления
	Content    json.RawMessage `json:"content" validate:"required"`     // Секции резюме
	IsPublic   bool            `json:"is_public"`                       // Публичный доступ
}
