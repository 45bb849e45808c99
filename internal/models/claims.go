package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	PermissionLeadRead     = "lead:read"
	PermissionLeadWrite    = "lead:write"
	PermissionPaymentWrite = "payment:write"
	PermissionStatusWrite  = "status:write"

	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"
)

type OfficerClaims struct {
	jwt.RegisteredClaims
	OfficerID    uint     `json:"officer_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *OfficerClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionLeadRead,
			PermissionLeadWrite,
			PermissionPaymentWrite,
			PermissionStatusWrite,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case "supervisor":
		return []string{
			PermissionLeadRead,
			PermissionLeadWrite,
			PermissionPaymentWrite,
			PermissionStatusWrite,
		}
	case "officer":
		return []string{
			PermissionLeadRead,
			PermissionLeadWrite,
			PermissionPaymentWrite,
		}
	default:
		return []string{}
	}
}
