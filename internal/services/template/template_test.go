package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/resume-builder/internal/authz"
	"github.com/magabrotheeeer/resume-builder/internal/models"
	services "github.com/magabrotheeeer/resume-builder/internal/services/template"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListTemplatesByTiers(ctx context.Context, tiers []string) ([]*models.Template, error) {
	args := m.Called(ctx, tiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Template), args.Error(1)
}

func (m *RepoMock) GetTemplate(ctx context.Context, id int) (*models.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Template), args.Error(1)
}

func (m *RepoMock) UpsertTemplate(ctx context.Context, t models.Template) (int, error) {
	args := m.Called(ctx, t)
	return args.Int(0), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTiersFor(t *testing.T) {
	tests := []struct {
		name  string
		perms authz.Set
		want  []string
	}{
		{
			name:  "только базовый уровень",
			perms: authz.NewSet(authz.PermTemplateBasic),
			want:  []string{"basic"},
		},
		{
			name:  "базовый и премиум",
			perms: authz.NewSet(authz.PermTemplateBasic, authz.PermTemplatePremium),
			want:  []string{"basic", "premium"},
		},
		{
			name: "все уровни",
			perms: authz.NewSet(authz.PermTemplateBasic,
				authz.PermTemplatePremium, authz.PermTemplateEnterprise),
			want: []string{"basic", "premium", "enterprise"},
		},
		{
			name:  "нет прав на шаблоны",
			perms: authz.NewSet(authz.PermResumeRead),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.TiersFor(tt.perms))
		})
	}
}

func TestTemplateService_ListForPermissions(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewTemplateService(repo, newTestLogger())

	expected := []*models.Template{
		{ID: 1, Name: "Classic", Tier: "basic"},
		{ID: 3, Name: "Executive", Tier: "premium"},
	}
	repo.On("ListTemplatesByTiers", mock.Anything, []string{"basic", "premium"}).
		Return(expected, nil).Once()

	perms := authz.NewSet(authz.PermTemplateBasic, authz.PermTemplatePremium)
	got, err := svc.ListForPermissions(context.Background(), perms)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)

	repo.AssertExpectations(t)
}

func TestTemplateService_ListForPermissions_Empty(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewTemplateService(repo, newTestLogger())

	got, err := svc.ListForPermissions(context.Background(), authz.NewSet())
	assert.NoError(t, err)
	assert.Empty(t, got)

	// Пустой набор прав не должен порождать запрос к хранилищу
	repo.AssertNotCalled(t, "ListTemplatesByTiers")
}

func TestTemplateService_ListForPermissions_RepoError(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewTemplateService(repo, newTestLogger())

	repo.On("ListTemplatesByTiers", mock.Anything, []string{"basic"}).
		Return(nil, errors.New("db error")).Once()

	_, err := svc.ListForPermissions(context.Background(), authz.NewSet(authz.PermTemplateBasic))
	assert.Error(t, err)
}

func TestTemplateService_Upsert(t *testing.T) {
	repo := new(RepoMock)
	svc := services.NewTemplateService(repo, newTestLogger())

	tmpl := models.Template{Name: "Minimal", Tier: "basic", IsActive: true}
	repo.On("UpsertTemplate", mock.Anything, tmpl).Return(6, nil).Once()

	id, err := svc.Upsert(context.Background(), tmpl)
	assert.NoError(t, err)
	assert.Equal(t, 6, id)
}
