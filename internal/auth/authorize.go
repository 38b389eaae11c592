package auth

import "shopfront/internal/model"

// CanAccess is the single ownership/role predicate used by every handler
// that gates a client- or order-scoped resource: admins may access any
// resource, other users only resources they own.
func CanAccess(roles []string, resourceOwnerID, actingUserID int64) bool {
	for _, r := range roles {
		if r == model.RoleAdmin {
			return true
		}
	}
	return resourceOwnerID == actingUserID
}
