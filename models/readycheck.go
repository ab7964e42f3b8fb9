package models

import (
	"strings"

	"gorm.io/gorm"
)

// ReadyCheck statuses. Ended is accepted by the schema but no flow
// currently produces it; Removed is the soft-delete marker.
const (
	StatusActive  = "active"
	StatusEnded   = "ended"
	StatusRemoved = "removed"
)

// PendingMessageID marks a readycheck whose summary message has not been
// posted yet. It is patched with the real message id right after posting.
const PendingMessageID = "pending"

// PendingField marks a signup field not yet chosen in the two-step flow.
const PendingField = "pending"

// Classes is the fixed set of character classes a player can sign up as.
var Classes = []string{"Warrior", "Trojan", "WaterTao", "FireTao", "Archer"}

// IsClass returns true if name is one of the known character classes.
func IsClass(name string) bool {
	for _, class := range Classes {
		if class == name {
			return true
		}
	}
	return false
}

// ReadyCheck represents one scheduled war roster-collection event.
type ReadyCheck struct {
	gorm.Model
	MessageID string
	ChannelID string
	GuildID   string
	CreatorID string
	WarName   string
	StartTime int64
	Status    string   `gorm:"default:active"`
	Guilds    []string `gorm:"serializer:json"`
	Signups   []Signup `gorm:"constraint:OnDelete:CASCADE"`
}

// ResolveGuild matches name case-insensitively against the readycheck's
// participating guilds, returning the stored spelling.
func (rc *ReadyCheck) ResolveGuild(name string) (string, bool) {
	for _, guild := range rc.Guilds {
		if strings.EqualFold(guild, name) {
			return guild, true
		}
	}
	return "", false
}

// Signup represents one user's guild and class selection for a readycheck.
// Exactly one row exists per (user, readycheck); either field may still
// hold the pending sentinel while the two-step flow is in progress.
type Signup struct {
	UserID       string `gorm:"primaryKey"`
	ReadyCheckID uint   `gorm:"primaryKey"`
	GuildName    string
	ClassName    string
}

// Complete returns true once both guild and class hold real values.
func (s *Signup) Complete() bool {
	return s.GuildName != PendingField && s.ClassName != PendingField
}
