package api

import "tasktracker/m/domain"

// canAccess decides whether a caller may read or mutate a task: admins may,
// and so may the task's owner. Everything else is forbidden.
func canAccess(callerID int64, callerRoles []string, ownerID int64) bool {
	if hasRole(callerRoles, domain.RoleAdmin) {
		return true
	}
	return callerID == ownerID
}

func hasRole(roles []string, want string) bool {
	for _, role := range roles {
		if role == want {
			return true
		}
	}
	return false
}
