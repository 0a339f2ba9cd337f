// Package services содержит бизнес-логику каталога шаблонов резюме.
// Видимость шаблона определяется уровнем (tier), а уровень выводится
// из эффективного набора прав пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// TemplateRepository определяет методы работы с шаблонами в хранилище.
type TemplateRepository interface {
	// ListTemplatesByTiers возвращает активные шаблоны указанных уровней.
	ListTemplatesByTiers(ctx context.Context, tiers []string) ([]*models.Template, error)
	// GetTemplate возвращает шаблон по ID.
	GetTemplate(ctx context.Context, id int) (*models.Template, error)
	// UpsertTemplate создаёт или обновляет шаблон по имени.
	UpsertTemplate(ctx context.Context, t models.Template) (int, error)
}

// TemplateService реализует выдачу каталога шаблонов по правам пользователя.
type TemplateService struct {
	repo TemplateRepository
	log  *slog.Logger
}

// NewTemplateService создает новый экземпляр TemplateService.
func NewTemplateService(repo TemplateRepository, log *slog.Logger) *TemplateService {
	return &TemplateService{repo: repo, log: log}
}

// tierPermissions сопоставляет уровень шаблона праву,
// открывающему доступ к нему.
var tierPermissions = map[string]authz.Permission{
	"basic":      authz.PermTemplateBasic,
	"premium":    authz.PermTemplatePremium,
	"enterprise": authz.PermTemplateEnterprise,
}

// TiersFor возвращает уровни шаблонов, доступные набору прав.
func TiersFor(perms authz.Set) []string {
	tiers := make([]string, 0, len(tierPermissions))
	for _, tier := range []string{"basic", "premium", "enterprise"} {
		if perms.Has(tierPermissions[tier]) {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}

// ListForPermissions возвращает шаблоны, доступные эффективному набору прав.
// Пустой набор прав даёт пустой каталог без обращения к хранилищу.
func (s *TemplateService) ListForPermissions(ctx context.Context, perms authz.Set) ([]*models.Template, error) {
	tiers := TiersFor(perms)
	if len(tiers) == 0 {
		return []*models.Template{}, nil
	}
	return s.repo.ListTemplatesByTiers(ctx, tiers)
}

// Get возвращает шаблон по ID.
func (s *TemplateService) Get(ctx context.Context, id int) (*models.Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

// Upsert создаёт или обновляет шаблон. Используется администратором.
func (s *TemplateService) Upsert(ctx context.Context, t models.Template) (int, error) {
	id, err := s.repo.UpsertTemplate(ctx, t)
	if err != nil {
		return 0, err
	}
	s.log.Info("upserted template", slog.Int("id", id), slog.String("name", t.Name))
	return id, nil
}
