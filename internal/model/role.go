package model

// Role codes
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// Privilege codes checked by the HTTP layer
const (
	PrivUserView          = "user:view"
	PrivUserCreate        = "user:create"
	PrivUserUpdate        = "user:update"
	PrivProductView       = "product:view"
	PrivProductCreate     = "product:create"
	PrivTransactionView   = "transaction:view"
	PrivTransactionCreate = "transaction:create"
	PrivDashboardView     = "dashboard:view"
	PrivReportView        = "report:view"
)

// RolePrivileges maps each role to the privileges it grants
var RolePrivileges = map[string][]string{
	RoleAdmin: {
		PrivUserView, PrivUserCreate, PrivUserUpdate,
		PrivProductView, PrivProductCreate,
		PrivTransactionView, PrivTransactionCreate,
		PrivDashboardView, PrivReportView,
	},
	RoleCashier: {
		PrivProductView,
		PrivTransactionView, PrivTransactionCreate,
		PrivDashboardView,
	},
}

// IsValidRole reports whether role is one of the known role codes
func IsValidRole(role string) bool {
	_, ok := RolePrivileges[role]
	return ok
}

// RoleHasPrivilege checks if the role grants a specific privilege
func RoleHasPrivilege(role, code string) bool {
	for _, p := range RolePrivileges[role] {
		if p == code {
			return true
		}
	}
	return false
}
