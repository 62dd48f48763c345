// Copyright (c) 2026 Fithub. All rights reserved.

package sec

// Identity is the authenticated principal attached to a request context.
//
// It is resolved from an opaque session token by the auth service and is
// the only account state middleware and handlers should rely on.
type Identity struct {
	// AccountID is the UUID of the authenticated account.
	AccountID string `json:"account_id"`
	// Handle is the unique login handle of the account.
	Handle string `json:"handle"`
	// Role is the account's capability set.
	Role AccountRole `json:"role"`
}

// IsTrainer reports whether the identity belongs to a trainer account.
func (i *Identity) IsTrainer() bool { return i != nil && i.Role == RoleTrainer }
