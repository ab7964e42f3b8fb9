package bot

import "warhorn/models"

// IsWarLeader reports whether a member may create readychecks.
// Administrators always qualify; otherwise the configured leader role set
// must be non-empty and share at least one role with the member. An empty
// leader set therefore restricts creation to administrators.
func IsWarLeader(isAdmin bool, leaderRoles []string, memberRoles []string) bool {
	if isAdmin {
		return true
	}
	return rolesIntersect(leaderRoles, memberRoles)
}

// CanParticipate reports whether a member may sign up. An empty configured
// participant set disables the check entirely; a non-empty set must share at
// least one role with the member. Administrator status is not consulted.
func CanParticipate(participantRoles []string, memberRoles []string) bool {
	if len(participantRoles) == 0 {
		return true
	}
	return rolesIntersect(participantRoles, memberRoles)
}

func rolesIntersect(configured []string, held []string) bool {
	for _, want := range configured {
		for _, have := range held {
			if want == have {
				return true
			}
		}
	}
	return false
}

func leaderRoles(settings *models.Settings) []string {
	if settings == nil {
		return nil
	}
	return settings.LeaderRoleIDs
}

func participantRoles(settings *models.Settings) []string {
	if settings == nil {
		return nil
	}
	return settings.ParticipantRoleIDs
}
