package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWarLeader(t *testing.T) {
	tests := []struct {
		name        string
		isAdmin     bool
		leaderRoles []string
		memberRoles []string
		expected    bool
	}{
		{
			name:        "admin always passes",
			isAdmin:     true,
			leaderRoles: nil,
			memberRoles: nil,
			expected:    true,
		},
		{
			name:        "admin passes even without matching role",
			isAdmin:     true,
			leaderRoles: []string{"1"},
			memberRoles: []string{"2"},
			expected:    true,
		},
		{
			name:        "matching role passes",
			leaderRoles: []string{"1", "2"},
			memberRoles: []string{"3", "2"},
			expected:    true,
		},
		{
			name:        "any one of the configured roles suffices",
			leaderRoles: []string{"1", "2", "3"},
			memberRoles: []string{"3"},
			expected:    true,
		},
		{
			name:        "no matching role fails",
			leaderRoles: []string{"1"},
			memberRoles: []string{"2"},
			expected:    false,
		},
		{
			name:        "empty leader set restricts to admins",
			leaderRoles: nil,
			memberRoles: []string{"1", "2"},
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(
				t,
				tt.expected,
				IsWarLeader(tt.isAdmin, tt.leaderRoles, tt.memberRoles),
			)
		})
	}
}

func TestCanParticipate(t *testing.T) {
	tests := []struct {
		name             string
		participantRoles []string
		memberRoles      []string
		expected         bool
	}{
		{
			name:             "empty participant set disables the check",
			participantRoles: nil,
			memberRoles:      nil,
			expected:         true,
		},
		{
			name:             "matching role passes",
			participantRoles: []string{"1", "2"},
			memberRoles:      []string{"2"},
			expected:         true,
		},
		{
			name:             "no matching role fails",
			participantRoles: []string{"1"},
			memberRoles:      []string{"2", "3"},
			expected:         false,
		},
		{
			name:             "member without roles fails a configured check",
			participantRoles: []string{"1"},
			memberRoles:      nil,
			expected:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(
				t,
				tt.expected,
				CanParticipate(tt.participantRoles, tt.memberRoles),
			)
		})
	}
}
