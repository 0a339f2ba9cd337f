package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// CreateResume добавляет новое резюме и возвращает его ID.
func (s *Storage) CreateResume(ctx context.Context, r models.Resume) (int, error) {
	const op = "storage.CreateResume"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO resumes (user_uid, title, slug, template_id, content, is_public)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		r.UserUID, r.Title, r.Slug, r.TemplateID, r.Content, r.IsPublic).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetResume возвращает резюме по ID.
func (s *Storage) GetResume(ctx context.Context, id int) (*models.Resume, error) {
	const op = "storage.GetResume"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, slug, template_id, content, is_public,
			      created_at, updated_at
			  FROM resumes
			  WHERE id = $1`
	r := &models.Resume{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.UserUID, &r.Title,
		&r.Slug, &r.TemplateID, &r.Content, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

// UpdateResume обновляет резюме по ID. Возвращает число обновлённых записей.
func (s *Storage) UpdateResume(ctx context.Context, r models.Resume, id int) (int64, error) {
	const op = "storage.UpdateResume"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE resumes
			  SET title = $1, template_id = $2, content = $3, is_public = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := s.DB.ExecContext(ctx, query, r.Title, r.TemplateID, r.Content, r.IsPublic, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// RemoveResume удаляет резюме по ID. Возвращает число удалённых записей.
func (s *Storage) RemoveResume(ctx context.Context, id int) (int64, error) {
	const op = "storage.RemoveResume"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListResumes возвращает резюме пользователя с пагинацией.
func (s *Storage) ListResumes(ctx context.Context, userUID string, limit, offset int) ([]*models.Resume, error) {
	const op = "storage.ListResumes"
	query := `SELECT id, user_uid, title, slug, template_id, content, is_public,
			      created_at, updated_at
			  FROM resumes
			  WHERE user_uid = $1
			  ORDER BY updated_at DESC
			  LIMIT $2 OFFSET $3`
	return s.listResumes(ctx, op, query, userUID, limit, offset)
}

// ListAllResumes возвращает все резюме с пагинацией. Используется модерацией.
func (s *Storage) ListAllResumes(ctx context.Context, limit, offset int) ([]*models.Resume, error) {
	const op = "storage.ListAllResumes"
	query := `SELECT id, user_uid, title, slug, template_id, content, is_public,
			      created_at, updated_at
			  FROM resumes
			  ORDER BY updated_at DESC
			  LIMIT $1 OFFSET $2`
	return s.listResumes(ctx, op, query, limit, offset)
}

func (s *Storage) listResumes(ctx context.Context, op, query string, args ...any) ([]*models.Resume, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Resume
	for rows.Next() {
		r := &models.Resume{}
		if err = rows.Scan(&r.ID, &r.UserUID, &r.Title, &r.Slug, &r.TemplateID,
			&r.Content, &r.IsPublic, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountResumesByUser возвращает число резюме пользователя.
func (s *Storage) CountResumesByUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.CountResumesByUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM resumes WHERE user_uid = $1`, userUID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CountResumes возвращает общее число резюме в системе.
func (s *Storage) CountResumes(ctx context.Context) (int, error) {
	const op = "storage.CountResumes"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
