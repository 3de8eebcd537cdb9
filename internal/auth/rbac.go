package auth

// Role is the closed set of identity roles. Persisted values are exactly
// these strings; anything else is rejected at the guard boundary.
type Role string

const (
	RoleParent    Role = "parent"
	RoleSecretary Role = "secretary"
	RoleAnalyst   Role = "analyst"
	RoleAdmin     Role = "admin"
)

// DefaultRole is assigned when registration omits a role.
const DefaultRole = RoleParent

func (r Role) Valid() bool {
	switch r {
	case RoleParent, RoleSecretary, RoleAnalyst, RoleAdmin:
		return true
	}
	return false
}

// Capability names. Additive and role-scoped: admin is enumerated
// independently rather than inheriting, so evolving one role never silently
// widens another.
const (
	CapDossierCreateOwn    = "dossier.create.own"
	CapDossierViewOwn      = "dossier.view.own"
	CapDossierCommentOwn   = "dossier.comment.own"
	CapDossierCreateAny    = "dossier.create.any"
	CapDossierViewAny      = "dossier.view.any"
	CapDossierUpdateAny    = "dossier.update.any"
	CapDossierSearch       = "dossier.search"
	CapDossierCommentAny   = "dossier.comment.any"
	CapDossierStatusUpdate = "dossier.status.update"
	CapDossierClose        = "dossier.close"
	CapDossierValidate     = "dossier.validate"
	CapDossierDeleteAny    = "dossier.delete.any"
	CapUserManage          = "user.manage"
	CapSettingsManage      = "settings.manage"
)

// rolePermissions is the permission model: configuration as code, not
// runtime-mutable state.
var rolePermissions = map[Role][]string{
	RoleParent: {
		CapDossierCreateOwn,
		CapDossierViewOwn,
		CapDossierCommentOwn,
	},
	RoleSecretary: {
		CapDossierCreateAny,
		CapDossierViewAny,
		CapDossierUpdateAny,
		CapDossierSearch,
	},
	RoleAnalyst: {
		CapDossierViewAny,
		CapDossierCommentAny,
		CapDossierStatusUpdate,
		CapDossierClose,
		CapDossierValidate,
	},
	RoleAdmin: {
		CapUserManage,
		CapSettingsManage,
		CapDossierViewAny,
		CapDossierCreateAny,
		CapDossierUpdateAny,
		CapDossierDeleteAny,
		CapDossierSearch,
		CapDossierCommentAny,
		CapDossierStatusUpdate,
		CapDossierClose,
		CapDossierValidate,
	},
}

// PermissionsFor returns a copy of the capability set for a role. Unknown
// roles get nothing.
func PermissionsFor(role Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

func HasCapability(role Role, capability string) bool {
	for _, p := range rolePermissions[role] {
		if p == capability {
			return true
		}
	}
	return false
}

// HasAnyCapability reports whether the role holds at least one of the given
// capabilities.
func HasAnyCapability(role Role, capabilities ...string) bool {
	for _, c := range capabilities {
		if HasCapability(role, c) {
			return true
		}
	}
	return false
}
