// Package services содержит планировщик уведомлений об истекающих
// тарифных планах: периодически опрашивает хранилище и публикует
// сообщения в очередь для сервиса рассылки.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/resume-builder/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/resume-builder/internal/lib/sl"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

// UserRepository описывает поиск пользователей с истекающими планами.
type UserRepository interface {
	// FindPlansExpiringSoon возвращает пользователей, у которых платный
	// план истекает в ближайшие days дней.
	FindPlansExpiringSoon(ctx context.Context, days int) ([]*models.PlanExpiryInfo, error)
}

// Publisher публикует сообщение в exchange с ключом маршрутизации.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// expiryWindowDays — за сколько дней до истечения плана отправляется уведомление.
const expiryWindowDays = 3

// SchedulerService периодически ищет истекающие планы и публикует
// уведомления для последующей отправки по почте.
type SchedulerService struct {
	repo      UserRepository
	publisher Publisher
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, publisher Publisher, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Run выполняет первый проход сразу и далее раз в interval,
// пока контекст не отменён.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runFindExpiringPlans(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runFindExpiringPlans(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runFindExpiringPlans(ctx context.Context) {
	s.log.Info("starting service to find expiring plans")
	infos, err := s.repo.FindPlansExpiringSoon(ctx, expiryWindowDays)
	if err != nil {
		s.log.Error("failed to find expiring plans", sl.Err(err))
		return
	}
	if len(infos) == 0 {
		s.log.Info("no expiring plans found")
		return
	}
	s.log.Info("found expiring plans", "count", len(infos))
	for _, info := range infos {
		err = s.publisher.Publish(rabbitmq.NotificationsExchange, rabbitmq.PlanExpiringRoutingKey, info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
