package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissions_Superset(t *testing.T) {
	// Каждая следующая роль должна включать все права предыдущей
	jobSeeker := RolePermissions(RoleJobSeeker)
	moderator := RolePermissions(RoleModerator)
	admin := RolePermissions(RoleAdmin)

	require.NotEmpty(t, jobSeeker)

	for p := range jobSeeker {
		assert.Truef(t, moderator.Has(p), "moderator is missing job_seeker permission %s", p)
	}
	for p := range moderator {
		assert.Truef(t, admin.Has(p), "admin is missing moderator permission %s", p)
	}

	assert.Greater(t, len(moderator), len(jobSeeker))
	assert.Greater(t, len(admin), len(moderator))
}

func TestRolePermissions_UnknownRole(t *testing.T) {
	assert.Empty(t, RolePermissions("superuser"))
	assert.Empty(t, RolePermissions(""))
}

func TestPlanPermissions(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want []Permission
	}{
		{
			name: "free дает пустой набор",
			plan: PlanFree,
			want: nil,
		},
		{
			name: "pro дает премиум-шаблоны и экспорт",
			plan: PlanPro,
			want: []Permission{PermTemplatePremium, PermExportDOCX, PermResumeShare, PermAnalyticsOwn},
		},
		{
			name: "enterprise включает все права pro",
			plan: PlanEnterprise,
			want: []Permission{PermTemplatePremium, PermExportDOCX, PermResumeShare, PermAnalyticsOwn, PermTemplateEnterprise, PermAnalyticsAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanPermissions(tt.plan)
			assert.Len(t, got, len(tt.want))
			for _, p := range tt.want {
				assert.Truef(t, got.Has(p), "missing permission %s", p)
			}
		})
	}
}

func TestPlanPermissions_UnknownPlan(t *testing.T) {
	assert.Empty(t, PlanPermissions("platinum"))
}

func TestSet_Union(t *testing.T) {
	a := NewSet(PermResumeCreate, PermResumeRead)
	b := NewSet(PermResumeRead, PermExportPDF)

	union := a.Union(b)
	assert.Len(t, union, 3)
	assert.True(t, union.Has(PermResumeCreate))
	assert.True(t, union.Has(PermResumeRead))
	assert.True(t, union.Has(PermExportPDF))

	// Исходные множества не изменяются
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
}
