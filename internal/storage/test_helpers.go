package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash, role string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		userUID, username, email, passwordHash, role)
	require.NoError(t, err)
}

// CreateUserWithPlan создает пользователя с тарифным планом
func (f *TestDataFactory) CreateUserWithPlan(t *testing.T, userUID, username, email, passwordHash, role,
	plan string, planExpires *time.Time) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO users
		(uid, username, email, password_hash, role, plan, plan_expires)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userUID, username, email, passwordHash, role, plan, planExpires)
	require.NoError(t, err)
}

// CreateTemplate создает тестовый шаблон и возвращает его ID
func (f *TestDataFactory) CreateTemplate(t *testing.T, name, tier string) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO templates (name, tier, preview_url, is_active)
		VALUES ($1, $2, '', TRUE) RETURNING id`, name, tier).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateResume создает тестовое резюме и возвращает его ID
func (f *TestDataFactory) CreateResume(t *testing.T, userUID, title string, templateID int) int {
	t.Helper()
	var id int
	content, _ := json.Marshal(map[string]string{"summary": "test"})
	err := f.storage.DB.QueryRow(`INSERT INTO resumes
		(user_uid, title, slug, template_id, content, is_public)
		VALUES ($1, $2, $3, $4, $5, FALSE) RETURNING id`,
		userUID, title, uuid.New().String(), templateID, content).Scan(&id)
	require.NoError(t, err)
	return id
}

// NewTestUserUID возвращает новый uid для тестового пользователя
func NewTestUserUID() string {
	return uuid.New().String()
}
