// internal/domain/authz/self.go
package authz

// Mutation is a change made through the admin user-management surface
type Mutation int

const (
	MutateDetails Mutation = iota
	MutateRole
	MutatePermissions
	MutateDelete
)

// Target is the account a mutation applies to
type Target struct {
	ID   uint
	Role Role
}

// CheckUserMutation applies the self-protection rules and the admin-only rule
// for privilege changes, on top of the action check done by Decide.
// Only admins may edit or delete another staff account.
func CheckUserMutation(actor Profile, target Target, m Mutation) Decision {
	self := actor.UserID == target.ID
	staffTarget := target.Role == RoleAdmin || target.Role == RoleModerator

	switch m {
	case MutateDelete:
		if self {
			return forbidden("self_delete")
		}
		if staffTarget && !actor.IsAdmin() {
			return forbidden("staff_target")
		}
		return Decide(actor, RemoveUser)
	case MutateRole, MutatePermissions:
		if self {
			return forbidden("self_privileges")
		}
		return Decide(actor, ManagePermissions)
	default:
		if !self && staffTarget && !actor.IsAdmin() {
			return forbidden("staff_target")
		}
		return Decide(actor, UpdateUser)
	}
}
