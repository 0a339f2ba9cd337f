package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/models"
	services "github.com/magabrotheeeer/resume-builder/internal/services/resume"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateResume(ctx context.Context, r models.Resume) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetResume(ctx context.Context, id int) (*models.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resume), args.Error(1)
}

func (m *RepoMock) UpdateResume(ctx context.Context, r models.Resume, id int) (int64, error) {
	args := m.Called(ctx, r, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) RemoveResume(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RepoMock) ListResumes(ctx context.Context, userUID string, limit, offset int) ([]*models.Resume, error) {
	args := m.Called(ctx, userUID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *RepoMock) ListAllResumes(ctx context.Context, limit, offset int) ([]*models.Resume, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *RepoMock) CountResumes(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountResumesByUser(ctx context.Context, userUID string) (int, error) {
	args := m.Called(ctx, userUID)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() models.DummyResume {
	return models.DummyResume{
		Title:      "Backend Engineer",
		TemplateID: 1,
		Content:    json.RawMessage(`{"experience":[]}`),
	}
}

func TestResumeService_Create(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	repo.On("CreateResume", mock.Anything, mock.MatchedBy(func(r models.Resume) bool {
		return r.UserUID == "uid-1" && r.Title == "Backend Engineer" && r.Slug != ""
	})).Return(7, nil).Once()
	cache.On("Set", "resume:7", mock.Anything, time.Hour).Return(nil).Once()

	id, err := svc.Create(context.Background(), "uid-1", testRequest())
	assert.NoError(t, err)
	assert.Equal(t, 7, id)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestResumeService_Create_RepoError(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	repo.On("CreateResume", mock.Anything, mock.Anything).Return(0, errors.New("db error")).Once()

	_, err := svc.Create(context.Background(), "uid-1", testRequest())
	assert.Error(t, err)
	cache.AssertNotCalled(t, "Set")
}

func TestResumeService_Read_Owner(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	resume := &models.Resume{ID: 7, UserUID: "uid-1", Title: "Backend Engineer"}

	cache.On("Get", "resume:7", mock.Anything).Return(false, nil).Once()
	repo.On("GetResume", mock.Anything, 7).Return(resume, nil).Once()
	cache.On("Set", "resume:7", resume, time.Hour).Return(nil).Once()

	got, err := svc.Read(context.Background(), 7, "uid-1", false)
	assert.NoError(t, err)
	assert.Equal(t, resume, got)
}

func TestResumeService_Read_ForeignDenied(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	resume := &models.Resume{ID: 7, UserUID: "uid-1"}

	cache.On("Get", "resume:7", mock.Anything).Return(false, nil)
	repo.On("GetResume", mock.Anything, 7).Return(resume, nil)
	cache.On("Set", "resume:7", resume, time.Hour).Return(nil)

	_, err := svc.Read(context.Background(), 7, "uid-2", false)
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestResumeService_Read_ForeignWithOverride(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	resume := &models.Resume{ID: 7, UserUID: "uid-1"}

	cache.On("Get", "resume:7", mock.Anything).Return(false, nil)
	repo.On("GetResume", mock.Anything, 7).Return(resume, nil)
	cache.On("Set", "resume:7", resume, time.Hour).Return(nil)

	// Модератор читает чужое резюме
	got, err := svc.Read(context.Background(), 7, "uid-2", true)
	assert.NoError(t, err)
	assert.Equal(t, resume, got)
}

func TestResumeService_Read_ForeignPublic(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	resume := &models.Resume{ID: 8, UserUID: "uid-1", IsPublic: true}

	cache.On("Get", "resume:8", mock.Anything).Return(false, nil)
	repo.On("GetResume", mock.Anything, 8).Return(resume, nil)
	cache.On("Set", "resume:8", resume, time.Hour).Return(nil)

	got, err := svc.Read(context.Background(), 8, "uid-2", false)
	assert.NoError(t, err)
	assert.Equal(t, resume, got)
}

func TestResumeService_Update_KeepsSlug(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	existing := &models.Resume{ID: 7, UserUID: "uid-1", Slug: "backend-engineer-abc123"}

	repo.On("GetResume", mock.Anything, 7).Return(existing, nil).Once()
	repo.On("UpdateResume", mock.Anything, mock.MatchedBy(func(r models.Resume) bool {
		return r.Slug == "backend-engineer-abc123" && r.UserUID == "uid-1"
	}), 7).Return(int64(1), nil).Once()
	cache.On("Invalidate", "resume:7").Return(nil).Once()

	count, err := svc.Update(context.Background(), 7, "uid-1", false, testRequest())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestResumeService_Update_ForeignDenied(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	existing := &models.Resume{ID: 7, UserUID: "uid-1"}
	repo.On("GetResume", mock.Anything, 7).Return(existing, nil).Once()

	_, err := svc.Update(context.Background(), 7, "uid-2", false, testRequest())
	assert.ErrorIs(t, err, services.ErrNotOwner)
	repo.AssertNotCalled(t, "UpdateResume")
}

func TestResumeService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	existing := &models.Resume{ID: 7, UserUID: "uid-1"}
	repo.On("GetResume", mock.Anything, 7).Return(existing, nil).Once()
	cache.On("Invalidate", "resume:7").Return(nil).Once()
	repo.On("RemoveResume", mock.Anything, 7).Return(int64(1), nil).Once()

	count, err := svc.Remove(context.Background(), 7, "uid-1", false)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResumeService_Remove_ForeignWithOverride(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	existing := &models.Resume{ID: 7, UserUID: "uid-1"}
	repo.On("GetResume", mock.Anything, 7).Return(existing, nil).Once()
	cache.On("Invalidate", "resume:7").Return(nil).Once()
	repo.On("RemoveResume", mock.Anything, 7).Return(int64(1), nil).Once()

	// Удаление модератором
	count, err := svc.Remove(context.Background(), 7, "uid-9", true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestResumeService_List(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	svc := services.NewResumeService(repo, cache, newTestLogger())

	expected := []*models.Resume{{ID: 1, UserUID: "uid-1"}, {ID: 2, UserUID: "uid-1"}}
	repo.On("ListResumes", mock.Anything, "uid-1", 10, 0).Return(expected, nil).Once()

	got, err := svc.List(context.Background(), "uid-1", 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}
