package security

const (
	RoleSuperAdmin    = "super_admin"
	RoleSoporte       = "soporte"
	RoleAdministrador = "administrador"
	RoleGestor        = "gestor"
	RoleOperador      = "operador"
	RolePropietario   = "propietario"
	RoleInquilino     = "inquilino"
)

// IsAdminTier reports whether role may use the accounting and inventory APIs.
func IsAdminTier(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleSoporte, RoleAdministrador, RoleGestor:
		return true
	}
	return false
}

// IsPrivileged reports whether role may act on any company.
func IsPrivileged(role string) bool {
	return role == RoleSuperAdmin || role == RoleSoporte
}

func IsValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleSoporte, RoleAdministrador, RoleGestor, RoleOperador, RolePropietario, RoleInquilino:
		return true
	}
	return false
}
