package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferTier(t *testing.T) {
	cases := []struct {
		selected    string
		wantTitle   string
		wantStorage string
	}{
		{"standard", "STANDARD TIER", "200GB"},
		{"Business Plan", "BUSINESS TIER", "400GB"},
		{"  premium  ", "PREMIUM TIER", "600GB"},
		{"PREMIUM TIER (600GB)", "PREMIUM TIER", "600GB"},
		{"gold", "STANDARD TIER", "200GB"},
		{"", "STANDARD TIER", "200GB"},
	}

	for _, tc := range cases {
		t.Run(tc.selected, func(t *testing.T) {
			plan := InferTier(tc.selected)
			assert.Equal(t, tc.wantTitle, plan.Title)
			assert.Equal(t, tc.wantStorage, plan.Storage)
		})
	}
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(ReportPriorityLow))
	assert.True(t, ValidPriority(ReportPriorityMedium))
	assert.True(t, ValidPriority(ReportPriorityHigh))
	assert.False(t, ValidPriority("Critical"))
	assert.False(t, ValidPriority("low"))
}

func TestStaffRoleHelpers(t *testing.T) {
	assert.True(t, ValidStaffRole(StaffRoleStaff))
	assert.True(t, ValidStaffRole(StaffRoleSuperAdmin))
	assert.False(t, ValidStaffRole("INTERN"))

	assert.False(t, StaffRoleStaff.AtLeastAdmin())
	assert.True(t, StaffRoleAdmin.AtLeastAdmin())
	assert.True(t, StaffRoleSuperAdmin.AtLeastAdmin())
}
