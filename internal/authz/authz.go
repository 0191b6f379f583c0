// Package authz holds the permission decisions for existing entries.
// Creation rights (grant exists and type is active) live in SQL next to
// the create path; these helpers decide pin and delete, evaluated fresh on
// every request.
package authz

import models "io.winapps.timelineapp/internal/models/account"

// CanPin reports whether the user may pin or unpin an entry written by
// authorID: the author with can_pin_own, or anyone with can_pin_any.
func CanPin(profile *models.UserProfile, authorID, userID string) bool {
	if profile == nil {
		return false
	}
	if profile.CanPinAny {
		return true
	}
	return authorID == userID && profile.CanPinOwn
}

// CanDelete reports whether the user may delete an entry written by
// authorID: the author, or anyone with can_delete_any.
func CanDelete(profile *models.UserProfile, authorID, userID string) bool {
	if authorID == userID {
		return true
	}
	return profile != nil && profile.CanDeleteAny
}
