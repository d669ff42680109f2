package auth

import "github.com/reviewhub/reviewhub-api/internal/model"

// The guard is a set of pure decision functions consulted by handlers
// before every mutating or object-scoped operation. The actor is always
// an explicit parameter (nil means unauthenticated); there is no ambient
// current-user state. Reads are unconditionally open and never consult
// the guard.

// CanAdministerCollection allows collection-level writes: creating or
// deleting titles, categories and genres, and any write on the users
// collection.
func CanAdministerCollection(actor *model.Account) bool {
	return actor != nil && actor.IsAdmin()
}

// CanModifyObject allows updating or deleting an authored object (review
// or comment) by its author, a moderator, or an admin.
func CanModifyObject(actor *model.Account, authorID uint64) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.IsModerator() || actor.ID == authorID
}

// CanUpdateProfile allows a profile update by the profile's owner or an
// admin. The role field stays immutable on this path regardless of who
// calls; that is enforced by the profile-update statement itself.
func CanUpdateProfile(actor *model.Account, targetID uint64) bool {
	if actor == nil {
		return false
	}
	return actor.ID == targetID || actor.IsAdmin()
}
