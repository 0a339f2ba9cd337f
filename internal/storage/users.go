package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, username, password_hash, role, plan, active, verified)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role, user.Plan,
		user.Active, user.Verified).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan,
			      plan_expires, plan_payment_id, active, verified, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan,
			      plan_expires, plan_payment_id, active, verified, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var planExpires sql.NullTime
	var planPaymentID sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &u.Plan, &planExpires, &planPaymentID, &u.Active, &u.Verified,
		&u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if planExpires.Valid {
		u.PlanExpires = &planExpires.Time
	}
	if planPaymentID.Valid {
		u.PlanPaymentID = planPaymentID.String
	}
	return u, nil
}

// ListUsers возвращает список пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, plan,
			      plan_expires, plan_payment_id, active, verified, created_at
			  FROM users
			  ORDER BY created_at
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		var planExpires sql.NullTime
		var planPaymentID sql.NullString
		if err = rows.Scan(&u.UID, &u.Email, &u.Username, &u.PasswordHash,
			&u.Role, &u.Plan, &planExpires, &planPaymentID, &u.Active, &u.Verified,
			&u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if planExpires.Valid {
			u.PlanExpires = &planExpires.Time
		}
		if planPaymentID.Valid {
			u.PlanPaymentID = planPaymentID.String
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUserRole меняет роль пользователя. Возвращает число обновлённых записей.
func (s *Storage) UpdateUserRole(ctx context.Context, userUID, role string) (int64, error) {
	const op = "storage.UpdateUserRole"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $1 WHERE uid = $2`, role, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UpdateUserProfile меняет имя пользователя и email.
func (s *Storage) UpdateUserProfile(ctx context.Context, userUID, username, email string) (int64, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET username = $1, email = $2 WHERE uid = $3`,
		username, email, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// DeactivateUser помечает учётную запись неактивной, не удаляя её данные.
func (s *Storage) DeactivateUser(ctx context.Context, userUID string) (int64, error) {
	const op = "storage.DeactivateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET active = false WHERE uid = $1`, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// UpdateUserPlan меняет тарифный план пользователя вместе с датой истечения
// и идентификатором оплатившего платежа.
func (s *Storage) UpdateUserPlan(ctx context.Context, userUID, plan string, planExpires *time.Time, planPaymentID string) (int64, error) {
	const op = "storage.UpdateUserPlan"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE users SET plan = $1, plan_expires = $2, plan_payment_id = $3 WHERE uid = $4`,
		plan, planExpires, planPaymentID, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// FindPlansExpiringSoon находит пользователей, чей платный план истекает
// в ближайшие days дней.
func (s *Storage) FindPlansExpiringSoon(ctx context.Context, days int) ([]*models.PlanExpiryInfo, error) {
	const op = "storage.FindPlansExpiringSoon"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, username, plan, plan_expires
			  FROM users
			  WHERE plan <> 'free'
			    AND plan_expires IS NOT NULL
			    AND plan_expires BETWEEN NOW() AND NOW() + make_interval(days => $1);`
	rows, err := s.DB.QueryContext(ctx, query, days)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PlanExpiryInfo
	for rows.Next() {
		info := &models.PlanExpiryInfo{}
		if err = rows.Scan(&info.Email, &info.Username, &info.Plan, &info.PlanExpires); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
