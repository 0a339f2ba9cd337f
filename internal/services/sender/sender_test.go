package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/lib/smtp"
	"github.com/magabrotheeeer/resume-builder/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.PlanExpiryInfo{
		Email:       "user@example.com",
		Username:    "seeker",
		Plan:        "pro",
		PlanExpires: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to marshal message: %v", err)
	}
	return body
}

func TestSenderService_SendPlanExpiringNotice(t *testing.T) {
	tests := []struct {
		name       string
		body       []byte
		setupMocks func(tr *MockTransport, cl *MockSMTPClient, w *MockSMTPWriter)
		wantErr    bool
	}{
		{
			name: "successful send",
			body: nil, // заполняется в тесте
			setupMocks: func(tr *MockTransport, cl *MockSMTPClient, w *MockSMTPWriter) {
				tr.On("GetSMTPUser").Return("noreply@resume-builder.example")
				tr.On("Connect").Return(cl, nil).Once()
				cl.On("Mail", "noreply@resume-builder.example").Return(nil).Once()
				cl.On("Rcpt", "user@example.com").Return(nil).Once()
				cl.On("Data").Return(w, nil).Once()
				w.On("Write", mock.Anything).Return(100, nil).Once()
				w.On("Close").Return(nil).Once()
				cl.On("Quit").Return(nil).Once()
				cl.On("Close").Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name:       "malformed message body",
			body:       []byte("not-json"),
			setupMocks: func(_ *MockTransport, _ *MockSMTPClient, _ *MockSMTPWriter) {},
			wantErr:    true,
		},
		{
			name: "connect error",
			body: nil,
			setupMocks: func(tr *MockTransport, _ *MockSMTPClient, _ *MockSMTPWriter) {
				tr.On("GetSMTPUser").Return("noreply@resume-builder.example")
				tr.On("Connect").Return(nil, errors.New("connection refused")).Once()
			},
			wantErr: true,
		},
		{
			name: "rcpt error",
			body: nil,
			setupMocks: func(tr *MockTransport, cl *MockSMTPClient, _ *MockSMTPWriter) {
				tr.On("GetSMTPUser").Return("noreply@resume-builder.example")
				tr.On("Connect").Return(cl, nil).Once()
				cl.On("Mail", "noreply@resume-builder.example").Return(nil).Once()
				cl.On("Rcpt", "user@example.com").Return(errors.New("mailbox unavailable")).Once()
				cl.On("Close").Return(nil).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := new(MockTransport)
			client := new(MockSMTPClient)
			writer := new(MockSMTPWriter)

			tt.setupMocks(transport, client, writer)

			svc := NewSenderService(transport, newNoopLogger())

			body := tt.body
			if body == nil {
				body = validBody(t)
			}

			err := svc.SendPlanExpiringNotice(body)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			transport.AssertExpectations(t)
			client.AssertExpectations(t)
			writer.AssertExpectations(t)
		})
	}
}
