package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	"github.com/magabrotheeeer/resume-builder/internal/session"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

type SessionWriterMock struct {
	mock.Mock
}

func (m *SessionWriterMock) WriteAuthCookie(w http.ResponseWriter, payload session.AuthPayload) error {
	args := m.Called(w, payload)
	return args.Error(0)
}

func (m *SessionWriterMock) Save(w http.ResponseWriter, rec session.Record) error {
	args := m.Called(w, rec)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	resolver := authz.NewResolver(func() time.Time { return now })
	logger := newNoopLogger()

	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockToken      string
		mockErr        error
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
		wantSavedPlan  string
	}{
		{
			name:        "valid login",
			requestBody: Request{Username: "user1", Password: "password123"},
			mockUser: &models.User{
				UID:         "uid-1",
				Username:    "user1",
				Role:        "job_seeker",
				Plan:        "pro",
				PlanExpires: &future,
			},
			mockToken:      "tok",
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"token":    "tok",
				"role":     "job_seeker",
				"plan":     "pro",
				"username": "user1",
			},
			wantStatus:    "OK",
			wantSavedPlan: "pro",
		},
		{
			name:        "просроченный платный план складывается в free",
			requestBody: Request{Username: "user2", Password: "password123"},
			mockUser: &models.User{
				UID:         "uid-2",
				Username:    "user2",
				Role:        "job_seeker",
				Plan:        "pro",
				PlanExpires: &past,
			},
			mockToken:      "tok2",
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"token":    "tok2",
				"role":     "job_seeker",
				"plan":     "free",
				"username": "user2",
			},
			wantStatus:    "OK",
			wantSavedPlan: "free",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Username: "user1"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "wrong credentials",
			requestBody:    Request{Username: "user1", Password: "password123"},
			mockErr:        errors.New("invalid credentials"),
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			sessionsMock := new(SessionWriterMock)
			handler := New(logger, authMock, sessionsMock, resolver)

			if tt.mockUser != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				authMock.On("Login", mock.Anything, req.Username, req.Password).
					Return(tt.mockToken, tt.mockUser, tt.mockErr).Once()
			}
			if tt.mockUser != nil {
				sessionsMock.On("WriteAuthCookie", mock.Anything, mock.Anything).
					Return(nil).Once()
				sessionsMock.On("Save", mock.Anything, mock.MatchedBy(func(rec session.Record) bool {
					return rec.Plan == tt.wantSavedPlan && rec.UserID == tt.mockUser.UID
				})).Return(nil).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
			}

			authMock.AssertExpectations(t)
			sessionsMock.AssertExpectations(t)
		})
	}
}
