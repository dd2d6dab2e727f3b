package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckUserMutation_SelfProtection(t *testing.T) {
	mod := staff(RoleModerator, ManageUsers, EditUser, DeleteUser)
	me := Target{ID: mod.UserID, Role: RoleModerator}

	d := CheckUserMutation(mod, me, MutateRole)
	assert.False(t, d.Allowed())
	assert.Equal(t, "self_privileges", d.Reason)

	d = CheckUserMutation(mod, me, MutateDelete)
	assert.False(t, d.Allowed())
	assert.Equal(t, "self_delete", d.Reason)

	// own details stay editable
	assert.True(t, CheckUserMutation(mod, me, MutateDetails).Allowed())

	// admins are protected from themselves too
	admin := staff(RoleAdmin)
	adminSelf := Target{ID: admin.UserID, Role: RoleAdmin}
	assert.False(t, CheckUserMutation(admin, adminSelf, MutateDelete).Allowed())
	assert.False(t, CheckUserMutation(admin, adminSelf, MutatePermissions).Allowed())
	assert.True(t, CheckUserMutation(admin, adminSelf, MutateDetails).Allowed())
}

func TestCheckUserMutation_OthersPrivilegesAdminOnly(t *testing.T) {
	mod := staff(RoleModerator, ManageUsers, AddUser, EditUser, DeleteUser)
	admin := staff(RoleAdmin)
	customer := Target{ID: 99, Role: RoleCustomer}

	assert.False(t, CheckUserMutation(mod, customer, MutateRole).Allowed())
	assert.False(t, CheckUserMutation(mod, customer, MutatePermissions).Allowed())
	assert.True(t, CheckUserMutation(mod, customer, MutateDetails).Allowed())
	assert.True(t, CheckUserMutation(mod, customer, MutateDelete).Allowed())

	assert.True(t, CheckUserMutation(admin, customer, MutateRole).Allowed())
	assert.True(t, CheckUserMutation(admin, customer, MutatePermissions).Allowed())
}

func TestCheckUserMutation_StaffTargetsAdminOnly(t *testing.T) {
	mod := staff(RoleModerator, ManageUsers, EditUser, DeleteUser)
	admin := staff(RoleAdmin)

	for _, role := range []Role{RoleAdmin, RoleModerator} {
		target := Target{ID: 99, Role: role}

		d := CheckUserMutation(mod, target, MutateDetails)
		assert.False(t, d.Allowed(), role)
		assert.Equal(t, "staff_target", d.Reason)
		assert.False(t, CheckUserMutation(mod, target, MutateDelete).Allowed(), role)

		assert.True(t, CheckUserMutation(admin, target, MutateDetails).Allowed(), role)
		assert.True(t, CheckUserMutation(admin, target, MutateDelete).Allowed(), role)
	}
}

func TestCheckUserMutation_NeedsFineFlag(t *testing.T) {
	viewer := staff(RoleModerator, ManageUsers)
	customer := Target{ID: 99, Role: RoleCustomer}
	assert.False(t, CheckUserMutation(viewer, customer, MutateDetails).Allowed())
	assert.False(t, CheckUserMutation(viewer, customer, MutateDelete).Allowed())
}
