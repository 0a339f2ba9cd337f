package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// ListTemplatesByTiers возвращает активные шаблоны заданных уровней доступа.
func (s *Storage) ListTemplatesByTiers(ctx context.Context, tiers []string) ([]*models.Template, error) {
	const op = "storage.ListTemplatesByTiers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, tier, preview_url, is_active
			  FROM templates
			  WHERE is_active AND tier = ANY($1)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, tiers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Template
	for rows.Next() {
		t := &models.Template{}
		if err = rows.Scan(&t.ID, &t.Name, &t.Tier, &t.PreviewURL, &t.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTemplate возвращает шаблон по ID.
func (s *Storage) GetTemplate(ctx context.Context, id int) (*models.Template, error) {
	const op = "storage.GetTemplate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	t := &models.Template{}
	query := `SELECT id, name, tier, preview_url, is_active FROM templates WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Tier,
		&t.PreviewURL, &t.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// UpsertTemplate добавляет шаблон или обновляет существующий по имени.
// Используется административным импортом каталога шаблонов.
func (s *Storage) UpsertTemplate(ctx context.Context, t models.Template) (int, error) {
	const op = "storage.UpsertTemplate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO templates (name, tier, preview_url, is_active)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO UPDATE
			  SET tier = EXCLUDED.tier, preview_url = EXCLUDED.preview_url,
			      is_active = EXCLUDED.is_active
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query, t.Name, t.Tier, t.PreviewURL,
		t.IsActive).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
