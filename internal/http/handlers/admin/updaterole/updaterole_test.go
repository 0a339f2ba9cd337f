package updaterole

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProfileServiceMock struct {
	mock.Mock
}

func (m *ProfileServiceMock) SetRole(ctx context.Context, userUID, role string) (int64, error) {
	args := m.Called(ctx, userUID, role)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateRoleHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		uid            string
		requestBody    interface{}
		mockCount      int64
		mockErr        error
		expectService  bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "назначение модератора",
			uid:            "uid-1",
			requestBody:    Request{Role: "moderator"},
			mockCount:      1,
			expectService:  true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "unknown role rejected",
			uid:            "uid-1",
			requestBody:    Request{Role: "superuser"},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Role must be one of: job_seeker moderator admin",
			wantStatus:     "Error",
		},
		{
			name:           "empty body",
			uid:            "uid-1",
			requestBody:    "",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "empty request",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			uid:            "uid-1",
			requestBody:    Request{Role: "admin"},
			mockErr:        errors.New("db down"),
			expectService:  true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not update role",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ProfileServiceMock)
			handler := New(logger, serviceMock)

			if tt.expectService {
				serviceMock.On("SetRole", mock.Anything, tt.uid, tt.requestBody.(Request).Role).
					Return(tt.mockCount, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPatch, "/admin/users/"+tt.uid+"/role", bytes.NewReader(bodyBytes))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", tt.uid)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				errStr, _ := got["error"].(string)
				assert.Equal(t, tt.wantError, errStr)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
