package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSetMembership(t *testing.T) {
	set := NewRoleSet(
		RoleAssignment{Role: RoleDiner},
		RoleAssignment{Role: RoleFranchisee, ObjectID: 7},
	)

	assert.True(t, set.Has(RoleDiner))
	assert.True(t, set.Has(RoleFranchisee), "Has ignores the object id")
	assert.False(t, set.Has(RoleAdmin))

	assert.True(t, set.HasScoped(RoleFranchisee, 7))
	assert.False(t, set.HasScoped(RoleFranchisee, 8))
	assert.False(t, set.HasScoped(RoleFranchisee, GlobalObjectID))
}

func TestRoleSetIsAdminRequiresGlobalGrant(t *testing.T) {
	assert.True(t, NewRoleSet(RoleAssignment{Role: RoleAdmin}).IsAdmin())
	assert.False(t, NewRoleSet(RoleAssignment{Role: RoleAdmin, ObjectID: 3}).IsAdmin())
	assert.False(t, RoleSet{}.IsAdmin())
}

func TestRoleSetCanManageFranchise(t *testing.T) {
	franchisee := NewRoleSet(RoleAssignment{Role: RoleFranchisee, ObjectID: 4})
	assert.True(t, franchisee.CanManageFranchise(4))
	assert.False(t, franchisee.CanManageFranchise(5))

	admin := NewRoleSet(RoleAssignment{Role: RoleAdmin})
	assert.True(t, admin.CanManageFranchise(5))
}

func TestRoleSetWithDoesNotMutateReceiver(t *testing.T) {
	base := NewRoleSet(RoleAssignment{Role: RoleDiner})
	grown := base.With(RoleAssignment{Role: RoleAdmin})

	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, grown.Len())
	assert.False(t, base.IsAdmin())
	assert.True(t, grown.IsAdmin())
}

func TestRoleSetDeduplicates(t *testing.T) {
	set := NewRoleSet(
		RoleAssignment{Role: RoleDiner},
		RoleAssignment{Role: RoleDiner},
	)
	assert.Equal(t, 1, set.Len())
}

func TestRoleSetJSON(t *testing.T) {
	set := NewRoleSet(
		RoleAssignment{Role: RoleDiner},
		RoleAssignment{Role: RoleFranchisee, ObjectID: 2},
	)

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"role":"diner"},{"role":"franchisee","objectId":2}]`, string(data))

	var decoded RoleSet
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.HasScoped(RoleFranchisee, 2))
	assert.Equal(t, set.List(), decoded.List())
}

func TestEmptyRoleSetMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(RoleSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStoreAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}
