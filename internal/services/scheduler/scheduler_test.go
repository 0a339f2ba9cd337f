package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindPlansExpiringSoon(ctx context.Context, days int) ([]*models.PlanExpiryInfo, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PlanExpiryInfo), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSchedulerService_runFindExpiringPlans(t *testing.T) {
	info := &models.PlanExpiryInfo{
		Email:       "test@example.com",
		Username:    "testuser",
		Plan:        "pro",
		PlanExpires: time.Now().AddDate(0, 0, 2),
	}

	tests := []struct {
		name       string
		setupMocks func(*MockRepository, *MockPublisher)
	}{
		{
			name: "success - found expiring plans",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				r.On("FindPlansExpiringSoon", mock.Anything, 3).Return([]*models.PlanExpiryInfo{info}, nil).Once()
				p.On("Publish", "notifications", "plan.expiring", info).Return(nil).Once()
			},
		},
		{
			name: "success - no expiring plans",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				r.On("FindPlansExpiringSoon", mock.Anything, 3).Return([]*models.PlanExpiryInfo{}, nil).Once()
			},
		},
		{
			name: "repository error",
			setupMocks: func(r *MockRepository, _ *MockPublisher) {
				// Метод не возвращает ошибку, только логирует
				r.On("FindPlansExpiringSoon", mock.Anything, 3).Return(nil, errors.New("db error")).Once()
			},
		},
		{
			name: "publish error does not stop other notifications",
			setupMocks: func(r *MockRepository, p *MockPublisher) {
				second := &models.PlanExpiryInfo{Email: "two@example.com", Username: "two", Plan: "enterprise"}
				r.On("FindPlansExpiringSoon", mock.Anything, 3).
					Return([]*models.PlanExpiryInfo{info, second}, nil).Once()
				p.On("Publish", "notifications", "plan.expiring", info).Return(errors.New("broker down")).Once()
				p.On("Publish", "notifications", "plan.expiring", second).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			publisher := new(MockPublisher)
			service := NewSchedulerService(repo, publisher, newNoopLogger())

			tt.setupMocks(repo, publisher)

			service.runFindExpiringPlans(context.Background())

			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestSchedulerService_RunStopsOnContextCancel(t *testing.T) {
	repo := new(MockRepository)
	publisher := new(MockPublisher)
	service := NewSchedulerService(repo, publisher, newNoopLogger())

	repo.On("FindPlansExpiringSoon", mock.Anything, 3).Return([]*models.PlanExpiryInfo{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		service.Run(ctx, 50*time.Millisecond)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
