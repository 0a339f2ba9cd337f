package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// CreatePlanPayment сохраняет созданный платёж за апгрейд плана.
func (s *Storage) CreatePlanPayment(ctx context.Context, p models.PlanPayment) (int, error) {
	const op = "storage.CreatePlanPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var id int
	query := `INSERT INTO plan_payments (user_uid, provider_payment_id, plan, amount, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.ProviderPaymentID, p.Plan, p.Amount, p.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetPlanPaymentByProviderID возвращает платёж по идентификатору провайдера.
func (s *Storage) GetPlanPaymentByProviderID(ctx context.Context, providerPaymentID string) (*models.PlanPayment, error) {
	const op = "storage.GetPlanPaymentByProviderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	p := &models.PlanPayment{}
	query := `SELECT id, user_uid, provider_payment_id, plan, amount, status, created_at
			  FROM plan_payments
			  WHERE provider_payment_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, providerPaymentID).Scan(&p.ID, &p.UserUID,
		&p.ProviderPaymentID, &p.Plan, &p.Amount, &p.Status, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdatePlanPaymentStatus меняет статус платежа по идентификатору провайдера.
func (s *Storage) UpdatePlanPaymentStatus(ctx context.Context, providerPaymentID, status string) (int64, error) {
	const op = "storage.UpdatePlanPaymentStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE plan_payments SET status = $1 WHERE provider_payment_id = $2`,
		status, providerPaymentID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
