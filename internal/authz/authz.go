// Package authz holds the ownership rule shared by every mutating use case.
package authz

import "blogicum/internal/entity"

// Owned is anything that records the user who created it.
type Owned interface {
	OwnerID() uint
}

// IsOwner reports whether user created resource. Anonymous users own nothing.
func IsOwner(user *entity.User, resource Owned) bool {
	if user == nil || resource == nil || user.ID == 0 {
		return false
	}
	return user.ID == resource.OwnerID()
}
