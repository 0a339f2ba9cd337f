package summary

import (
	"context"
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

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/http/middlewarectx"
)

type AnalyticsServiceMock struct {
	mock.Mock
}

func (m *AnalyticsServiceMock) CountByUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

func (m *AnalyticsServiceMock) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSummaryHandler_ServeHTTP(t *testing.T) {
	logger := newNoopLogger()
	const userUID = "user-uid-123"

	ownScope := authz.NewSet(authz.PermAnalyticsOwn)
	allScope := authz.NewSet(authz.PermAnalyticsOwn, authz.PermAnalyticsAll)

	tests := []struct {
		name           string
		perms          authz.Set
		setupMock      func(m *AnalyticsServiceMock)
		wantStatusCode int
		wantStatus     string
		wantScope      string
		wantCount      float64
		wantError      string
	}{
		{
			name:  "без analytics.all охват ограничен своими резюме",
			perms: ownScope,
			setupMock: func(m *AnalyticsServiceMock) {
				m.On("CountByUser", mock.Anything, userUID).Return(3, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantScope:      "own",
			wantCount:      3,
		},
		{
			name:  "с analytics.all охват по всей системе",
			perms: allScope,
			setupMock: func(m *AnalyticsServiceMock) {
				m.On("CountAll", mock.Anything).Return(42, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantScope:      "all",
			wantCount:      42,
		},
		{
			name:  "storage error",
			perms: ownScope,
			setupMock: func(m *AnalyticsServiceMock) {
				m.On("CountByUser", mock.Anything, userUID).
					Return(0, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "Error",
			wantError:      "could not build analytics summary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AnalyticsServiceMock)
			tt.setupMock(serviceMock)
			handler := New(logger, serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
			ctx = context.WithValue(ctx, middlewarectx.Permissions, tt.perms)
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])
			if tt.wantError != "" {
				errStr, _ := got["error"].(string)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantScope, data["scope"])
				assert.Equal(t, tt.wantCount, data["resume_count"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
