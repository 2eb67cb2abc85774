package auth

import apperrors "task-dashboard.com/task-dashboard/internal/errors"

// AuthorizeUser allows the caller to act only on resources it owns.
func AuthorizeUser(callerID, ownerID string) error {
	if callerID == "" || callerID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}
