package models

import "github.com/golang-jwt/jwt/v5"

// Dashboard roles
const (
	RoleStoreAdmin    = "store_admin"
	RoleBranchManager = "branch_manager"
	RoleCashier       = "cashier"
)

// Application permissions
const (
	PermissionReportRead    = "report:read"
	PermissionDatasetWrite  = "dataset:write"
	PermissionDatasetImport = "dataset:import"
)

// UserClaims are the bearer token claims issued by the POS auth service.
// BranchID is set for branch-scoped roles.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID      uint     `json:"user_id"`
	StoreID     uint     `json:"store_id"`
	BranchID    *int64   `json:"branch_id,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	for _, p := range GetDefaultPermissions(c.Role) {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleStoreAdmin:
		return []string{
			PermissionReportRead,
			PermissionDatasetWrite,
			PermissionDatasetImport,
		}
	case RoleBranchManager:
		return []string{
			PermissionReportRead,
		}
	default:
		return []string{}
	}
}
