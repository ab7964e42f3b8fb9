package models

// Settings holds per-server configuration. A row is created lazily on the
// first configuration write and updated in place afterwards.
type Settings struct {
	GuildID            string   `gorm:"primaryKey"`
	LeaderRoleIDs      []string `gorm:"serializer:json"`
	ParticipantRoleIDs []string `gorm:"serializer:json"`
	DefaultChannelID   string
}
