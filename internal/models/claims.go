package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionProfileRead    = "profile:read"
	PermissionProfileWrite   = "profile:write"
	PermissionDirectoryRead  = "directory:read"
	PermissionProposalRead   = "proposal:read"
	PermissionProposalWrite  = "proposal:write"
	PermissionPackageRead    = "package:read"
	PermissionPackageWrite   = "package:write"
	PermissionChangePassword = "user:change-password"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
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
	case RoleAdmin:
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionDirectoryRead,
			PermissionProposalRead,
			PermissionProposalWrite,
			PermissionPackageRead,
			PermissionPackageWrite,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleUser:
		return []string{
			PermissionProfileRead,
			PermissionProfileWrite,
			PermissionDirectoryRead,
			PermissionProposalRead,
			PermissionProposalWrite,
			PermissionPackageRead,
			PermissionPackageWrite,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
