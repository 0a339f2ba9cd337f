// Package services содержит бизнес-логику оплаты апгрейда тарифного плана:
// создание платежа у провайдера и обработку webhook-уведомлений.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	"github.com/magabrotheeeer/resume-builder/internal/paymentprovider"
)

// ErrUpgradeNotAllowed возвращается, когда целевой план не выше текущего.
var ErrUpgradeNotAllowed = errors.New("target plan is not an upgrade")

// ErrUnknownPlan возвращается для плана, у которого нет цены.
var ErrUnknownPlan = errors.New("unknown plan")

// UserRepository описывает чтение профиля для проверки текущего плана.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// PaymentRepository определяет методы работы с платежами в хранилище.
type PaymentRepository interface {
	// CreatePlanPayment сохраняет платёж и возвращает его ID.
	CreatePlanPayment(ctx context.Context, p models.PlanPayment) (int, error)
	// GetPlanPaymentByProviderID возвращает платёж по ID провайдера.
	GetPlanPaymentByProviderID(ctx context.Context, providerPaymentID string) (*models.PlanPayment, error)
	// UpdatePlanPaymentStatus меняет статус платежа.
	UpdatePlanPaymentStatus(ctx context.Context, providerPaymentID, status string) (int64, error)
}

// PlanApplier применяет оплаченный план к профилю пользователя.
type PlanApplier interface {
	ApplyPlan(ctx context.Context, userUID, plan string, planExpires *time.Time, planPaymentID string) (int64, error)
}

// PaymentProvider описывает создание платежа у внешнего провайдера.
type PaymentProvider interface {
	CreatePayment(req paymentprovider.CreatePaymentRequest) (*paymentprovider.CreatePaymentResponse, error)
}

// planPrices — цены планов в месяц. Free не продаётся.
var planPrices = map[string]string{
	"pro":        "499.00",
	"enterprise": "1499.00",
}

// planAmounts — те же цены в целых рублях для записи платежа в хранилище.
var planAmounts = map[string]int{
	"pro":        499,
	"enterprise": 1499,
}

// BillingService реализует апгрейд тарифного плана через платёжного провайдера.
type BillingService struct {
	users     UserRepository
	payments  PaymentRepository
	profiles  PlanApplier
	provider  PaymentProvider
	resolver  *authz.Resolver
	returnURL string
	log       *slog.Logger
	now       func() time.Time
}

// NewBillingService создает новый экземпляр BillingService.
// При nil now используется time.Now.
func NewBillingService(users UserRepository, payments PaymentRepository, profiles PlanApplier,
	provider PaymentProvider, resolver *authz.Resolver, returnURL string,
	log *slog.Logger, now func() time.Time) *BillingService {
	if now == nil {
		now = time.Now
	}
	return &BillingService{
		users:     users,
		payments:  payments,
		profiles:  profiles,
		provider:  provider,
		resolver:  resolver,
		returnURL: returnURL,
		log:       log,
		now:       now,
	}
}

// CreateUpgrade создает платёж за апгрейд плана и возвращает URL подтверждения.
// Апгрейд разрешён только на строго более высокий план; даунгрейд
// и повторная покупка текущего плана отклоняются.
func (s *BillingService) CreateUpgrade(ctx context.Context, userUID, targetPlan string) (string, error) {
	const op = "billing.CreateUpgrade"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !s.resolver.CanUpgradeTo(user, authz.Plan(targetPlan)) {
		return "", ErrUpgradeNotAllowed
	}
	price, ok := planPrices[targetPlan]
	if !ok {
		return "", ErrUnknownPlan
	}

	resp, err := s.provider.CreatePayment(paymentprovider.CreatePaymentRequest{
		Amount:  paymentprovider.Amount{Value: price, Currency: "RUB"},
		Capture: true,
		Confirmation: paymentprovider.Confirmation{
			Type:      "redirect",
			ReturnURL: s.returnURL,
		},
		Description: fmt.Sprintf("Upgrade to %s plan", targetPlan),
		Metadata: map[string]string{
			"user_uid": userUID,
			"plan":     targetPlan,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.payments.CreatePlanPayment(ctx, models.PlanPayment{
		UserUID:           userUID,
		ProviderPaymentID: resp.ID,
		Plan:              targetPlan,
		Amount:            planAmounts[targetPlan],
		Status:            paymentprovider.StatusPending,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created upgrade payment",
		slog.String("user_uid", userUID),
		slog.String("plan", targetPlan),
		slog.String("provider_payment_id", resp.ID))

	return resp.Confirmation.ConfirmationURL, nil
}

// HandleWebhook обрабатывает уведомление провайдера. Успешная оплата
// применяет план к профилю на месяц вперёд от момента обработки.
// Повторное уведомление об уже применённом платеже игнорируется.
func (s *BillingService) HandleWebhook(ctx context.Context, n paymentprovider.WebhookNotification) error {
	const op = "billing.HandleWebhook"

	if n.Event != paymentprovider.EventPaymentSucceeded {
		s.log.Info("ignoring webhook event", slog.String("event", n.Event))
		return nil
	}

	payment, err := s.payments.GetPlanPaymentByProviderID(ctx, n.Object.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if payment.Status == paymentprovider.StatusSucceeded {
		// Провайдер повторил доставку, план уже применён
		return nil
	}

	if _, err := s.payments.UpdatePlanPaymentStatus(ctx, n.Object.ID, paymentprovider.StatusSucceeded); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	expires := s.now().AddDate(0, 1, 0)
	if _, err := s.profiles.ApplyPlan(ctx, payment.UserUID, payment.Plan, &expires, n.Object.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("applied paid plan",
		slog.String("user_uid", payment.UserUID),
		slog.String("plan", payment.Plan))
	return nil
}
