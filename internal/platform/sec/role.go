// Copyright (c) 2026 Fithub. All rights reserved.

package sec

// # Account Roles

// AccountRole represents the capability set granted to an account.
type AccountRole string

const (
	// Can publish fitness plans and manage a trainer profile
	RoleTrainer AccountRole = "trainer"

	// Default role for standard registered accounts
	RoleUser AccountRole = "user"
)

// Valid reports whether the role is one of the recognized values.
func (r AccountRole) Valid() bool {
	return r == RoleTrainer || r == RoleUser
}
