package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/paymentprovider"
)

type BillingServiceMock struct {
	mock.Mock
}

func (m *BillingServiceMock) HandleWebhook(ctx context.Context, n paymentprovider.WebhookNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookHandler_ServeHTTP(t *testing.T) {
	const secret = "test-secret"
	logger := newNoopLogger()

	validBody, err := json.Marshal(paymentprovider.WebhookNotification{
		Type:  "notification",
		Event: paymentprovider.EventPaymentSucceeded,
		Object: paymentprovider.WebhookObject{
			ID:     "pay-1",
			Status: paymentprovider.StatusSucceeded,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name           string
		body           []byte
		signature      string
		mockErr        error
		expectService  bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid notification",
			body:           validBody,
			signature:      sign(secret, validBody),
			expectService:  true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "missing signature",
			body:           validBody,
			signature:      "",
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid signature",
			wantStatus:     "Error",
		},
		{
			name:           "подпись от другого секрета",
			body:           validBody,
			signature:      sign("wrong-secret", validBody),
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid signature",
			wantStatus:     "Error",
		},
		{
			name:           "malformed body",
			body:           []byte("not a json"),
			signature:      sign(secret, []byte("not a json")),
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "processing error",
			body:           validBody,
			signature:      sign(secret, validBody),
			mockErr:        errors.New("unknown payment"),
			expectService:  true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not process webhook",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(BillingServiceMock)
			handler := New(logger, serviceMock, secret)

			if tt.expectService {
				serviceMock.On("HandleWebhook", mock.Anything, mock.Anything).
					Return(tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			if tt.signature != "" {
				req.Header.Set("X-Api-Signature", tt.signature)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}

			serviceMock.AssertExpectations(t)
			if !tt.expectService {
				serviceMock.AssertNotCalled(t, "HandleWebhook")
			}
		})
	}
}
