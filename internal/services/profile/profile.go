// Package services содержит бизнес-логику работы с профилями пользователей:
// чтение профиля с кешированием, смена роли и применение оплаченного плана.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// ProfileRepository определяет методы работы с пользователями в хранилище.
type ProfileRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// ListUsers возвращает список пользователей с пагинацией.
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	// UpdateUserRole меняет роль пользователя.
	UpdateUserRole(ctx context.Context, userUID, role string) (int64, error)
	// UpdateUserProfile меняет имя пользователя и email.
	UpdateUserProfile(ctx context.Context, userUID, username, email string) (int64, error)
	// DeactivateUser помечает учётную запись неактивной.
	DeactivateUser(ctx context.Context, userUID string) (int64, error)
	// UpdateUserPlan меняет тарифный план и дату его истечения.
	UpdateUserPlan(ctx context.Context, userUID, plan string, planExpires *time.Time, planPaymentID string) (int64, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ProfileService реализует операции над профилями с кешированием.
// Профиль — источник истины для шлюза авторизации, поэтому любая
// мутация роли или плана инвалидирует кеш до возврата управления.
type ProfileService struct {
	repo  ProfileRepository
	cache Cache
	log   *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo ProfileRepository, cache Cache, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func profileCacheKey(userUID string) string {
	return fmt.Sprintf("profile:%s", userUID)
}

// GetByUserUID возвращает профиль пользователя, используя кеш или репозиторий.
func (s *ProfileService) GetByUserUID(ctx context.Context, userUID string) (*models.User, error) {
	var cached *models.User
	key := profileCacheKey(userUID)
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read profile cache", slog.String("key", key), sl.Err(err))
	}
	if found && cached != nil {
		return cached, nil
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(key, user, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", key), sl.Err(err))
	}
	return user, nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *ProfileService) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// SetRole назначает пользователю новую роль и инвалидирует кеш профиля.
func (s *ProfileService) SetRole(ctx context.Context, userUID, role string) (int64, error) {
	count, err := s.repo.UpdateUserRole(ctx, userUID, role)
	if err != nil {
		return 0, err
	}
	s.invalidate(userUID)
	s.log.Info("updated user role",
		slog.String("user_uid", userUID), slog.String("role", role))
	return count, nil
}

// UpdateProfile меняет имя и email пользователя и инвалидирует кеш профиля.
func (s *ProfileService) UpdateProfile(ctx context.Context, userUID, username, email string) (int64, error) {
	count, err := s.repo.UpdateUserProfile(ctx, userUID, username, email)
	if err != nil {
		return 0, err
	}
	s.invalidate(userUID)
	s.log.Info("updated user profile", slog.String("user_uid", userUID))
	return count, nil
}

// Deactivate помечает учётную запись неактивной и инвалидирует кеш профиля.
func (s *ProfileService) Deactivate(ctx context.Context, userUID string) (int64, error) {
	count, err := s.repo.DeactivateUser(ctx, userUID)
	if err != nil {
		return 0, err
	}
	s.invalidate(userUID)
	s.log.Info("deactivated user", slog.String("user_uid", userUID))
	return count, nil
}

// ApplyPlan записывает пользователю оплаченный план с датой истечения
// и идентификатором платежа, затем инвалидирует кеш профиля.
func (s *ProfileService) ApplyPlan(ctx context.Context, userUID, plan string, planExpires *time.Time, planPaymentID string) (int64, error) {
	count, err := s.repo.UpdateUserPlan(ctx, userUID, plan, planExpires, planPaymentID)
	if err != nil {
		return 0, err
	}
	s.invalidate(userUID)
	s.log.Info("applied plan to user",
		slog.String("user_uid", userUID), slog.String("plan", plan))
	return count, nil
}

func (s *ProfileService) invalidate(userUID string) {
	key := profileCacheKey(userUID)
	if err := s.cache.Invalidate(key); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", key), sl.Err(err))
	}
}
