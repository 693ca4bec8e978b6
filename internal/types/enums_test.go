package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleFilterRoles(t *testing.T) {
	assert.Equal(t, []RoleType{RoleAdmin, RoleCurator}, RoleFilterStaff.Roles())
	assert.Equal(t, []RoleType{RoleAdmin, RoleCurator, RoleMember}, RoleFilterAll.Roles())
	assert.Nil(t, RoleFilter(0).Roles())
	assert.Equal(t, []string{"admin", "curator"}, RoleFilterStaff.Strings())
}

func TestRoleFilterContains(t *testing.T) {
	tests := []struct {
		filter RoleFilter
		role   RoleType
		want   bool
	}{
		{RoleFilterStaff, RoleAdmin, true},
		{RoleFilterStaff, RoleCurator, true},
		{RoleFilterStaff, RoleMember, false},
		{RoleFilterAll, RoleMember, true},
		{RoleFilterAll, RoleType("owner"), false},
		{RoleFilter(42), RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.filter.String()+"/"+string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Contains(tt.role))
		})
	}
}

func TestStaffRolesAreSubsetOfAll(t *testing.T) {
	for _, r := range RoleFilterStaff.Roles() {
		assert.True(t, RoleFilterAll.Contains(r), r)
		assert.True(t, r.IsStaff(), r)
	}
	assert.False(t, RoleMember.IsStaff())
}

func TestRoleRank(t *testing.T) {
	assert.Less(t, RoleAdmin.Rank(), RoleCurator.Rank())
	assert.Less(t, RoleCurator.Rank(), RoleMember.Rank())
	assert.False(t, RoleType("owner").IsValid())
}

func TestParseScope(t *testing.T) {
	assert.Equal(t, ScopeStaff, ParseScope("staff"))
	assert.Equal(t, ScopeNdaed, ParseScope(" NDAed "))
	assert.Equal(t, ScopePublic, ParseScope(""))
	assert.Equal(t, ScopePublic, ParseScope("root"))
}

func TestScopeCanSee(t *testing.T) {
	assert.True(t, ScopeStaff.CanSee(ScopeNdaed))
	assert.True(t, ScopeVouched.CanSee(ScopePublic))
	assert.True(t, ScopePublic.CanSee(ScopePublic))
	assert.False(t, ScopePublic.CanSee(ScopeAuthenticated))
	assert.False(t, ScopeVouched.CanSee(ScopeStaff))
}

func TestGroupTypeIsValid(t *testing.T) {
	assert.True(t, GroupOpen.IsValid())
	assert.True(t, GroupReviewed.IsValid())
	assert.True(t, GroupClosed.IsValid())
	assert.False(t, GroupType("secret").IsValid())
}
