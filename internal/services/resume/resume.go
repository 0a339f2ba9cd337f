// Package services содержит бизнес-логику для управления резюме и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// ErrNotOwner возвращается при попытке изменить чужое резюме
// без прав модерации.
var ErrNotOwner = errors.New("resume belongs to another user")

// ResumeRepository определяет методы для работы с резюме в хранилище.
type ResumeRepository interface {
	// CreateResume добавляет новое резюме и возвращает его ID.
	CreateResume(ctx context.Context, r models.Resume) (int, error)
	// GetResume возвращает резюме по ID.
	GetResume(ctx context.Context, id int) (*models.Resume, error)
	// UpdateResume обновляет резюме по ID.
	UpdateResume(ctx context.Context, r models.Resume, id int) (int64, error)
	// RemoveResume удаляет резюме по ID и возвращает количество удалённых записей.
	RemoveResume(ctx context.Context, id int) (int64, error)
	// ListResumes возвращает резюме пользователя с пагинацией.
	ListResumes(ctx context.Context, userUID string, limit, offset int) ([]*models.Resume, error)
	// ListAllResumes возвращает все резюме с пагинацией.
	ListAllResumes(ctx context.Context, limit, offset int) ([]*models.Resume, error)
	// CountResumesByUser подсчитывает резюме пользователя.
	CountResumesByUser(ctx context.Context, userUID string) (int, error)
	// CountResumes подсчитывает все резюме в системе.
	CountResumes(ctx context.Context) (int, error)
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

// ResumeService реализует бизнес-логику работы с резюме, включая кеширование
// и проверку владения. Операции изменения доступны владельцу резюме;
// override пропускает проверку для модераторов.
type ResumeService struct {
	repo  ResumeRepository
	cache Cache
	log   *slog.Logger
}

// NewResumeService создает новый экземпляр ResumeService.
func NewResumeService(repo ResumeRepository, cache Cache, log *slog.Logger) *ResumeService {
	return &ResumeService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func resumeCacheKey(id int) string {
	return fmt.Sprintf("resume:%d", id)
}

// makeSlug строит публичный слаг из названия и случайного суффикса.
func makeSlug(title string) string {
	base := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return base + "-" + uuid.NewString()[:8]
}

// Create создает новое резюме для пользователя, кеширует его и возвращает ID.
func (s *ResumeService) Create(ctx context.Context, userUID string, req models.DummyResume) (int, error) {
	resume := models.Resume{
		UserUID:    userUID,
		Title:      req.Title,
		Slug:       makeSlug(req.Title),
		TemplateID: req.TemplateID,
		Content:    req.Content,
		IsPublic:   req.IsPublic,
	}

	id, err := s.repo.CreateResume(ctx, resume)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new resume", slog.Int("id", id), slog.String("user_uid", userUID))

	resume.ID = id
	cacheKey := resumeCacheKey(id)
	if err := s.cache.Set(cacheKey, resume, time.Hour); err != nil {
		s.log.Warn("failed to cache resume", slog.String("key", cacheKey), sl.Err(err))
	}

	return id, nil
}

// Read возвращает резюме по ID, используя кеш или репозиторий.
// Чужое резюме доступно только с override (право модерации)
// либо если оно публичное.
func (s *ResumeService) Read(ctx context.Context, id int, userUID string, override bool) (*models.Resume, error) {
	var resume *models.Resume
	cacheKey := resumeCacheKey(id)
	found, err := s.cache.Get(cacheKey, &resume)
	if err != nil {
		s.log.Warn("failed to read resume cache", slog.String("key", cacheKey), sl.Err(err))
		found = false
	}
	if !found {
		resume, err = s.repo.GetResume(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, resume, time.Hour); err != nil {
			s.log.Warn("failed to cache resume", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	if resume.UserUID != userUID && !override && !resume.IsPublic {
		return nil, ErrNotOwner
	}
	return resume, nil
}

// Update обновляет резюме и инвалидирует кеш.
// Слаг сохраняется: публичные ссылки не ломаются при редактировании.
func (s *ResumeService) Update(ctx context.Context, id int, userUID string, override bool, req models.DummyResume) (int64, error) {
	existing, err := s.repo.GetResume(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.UserUID != userUID && !override {
		return 0, ErrNotOwner
	}

	updated := models.Resume{
		UserUID:    existing.UserUID,
		Title:      req.Title,
		Slug:       existing.Slug,
		TemplateID: req.TemplateID,
		Content:    req.Content,
		IsPublic:   req.IsPublic,
	}
	count, err := s.repo.UpdateResume(ctx, updated, id)
	if err != nil {
		return 0, err
	}

	s.invalidate(id)
	return count, nil
}

// Remove удаляет резюме по ID и инвалидирует кеш.
func (s *ResumeService) Remove(ctx context.Context, id int, userUID string, override bool) (int64, error) {
	existing, err := s.repo.GetResume(ctx, id)
	if err != nil {
		return 0, err
	}
	if existing.UserUID != userUID && !override {
		return 0, ErrNotOwner
	}

	s.invalidate(id)

	count, err := s.repo.RemoveResume(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List возвращает резюме пользователя с пагинацией.
func (s *ResumeService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Resume, error) {
	return s.repo.ListResumes(ctx, userUID, limit, offset)
}

// ListAll возвращает все резюме с пагинацией. Используется модерацией.
func (s *ResumeService) ListAll(ctx context.Context, limit, offset int) ([]*models.Resume, error) {
	return s.repo.ListAllResumes(ctx, limit, offset)
}

// CountByUser возвращает количество резюме пользователя.
func (s *ResumeService) CountByUser(ctx context.Context, userUID string) (int, error) {
	return s.repo.CountResumesByUser(ctx, userUID)
}

// CountAll возвращает общее число резюме в системе.
func (s *ResumeService) CountAll(ctx context.Context) (int, error) {
	return s.repo.CountResumes(ctx)
}

func (s *ResumeService) invalidate(id int) {
	cacheKey := resumeCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate resume cache", slog.String("key", cacheKey), sl.Err(err))
	}
}
