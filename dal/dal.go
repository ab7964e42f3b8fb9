package dal

import (
	"warhorn/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitDB creates and returns a database connection. WAL journal mode keeps
// concurrent handler writes from blocking readers; foreign keys are enabled
// so signup rows cascade with their readycheck.
func InitDB(dbPath string) *gorm.DB {
	db, err := gorm.Open(
		sqlite.Open(dbPath+"?_journal_mode=WAL&_foreign_keys=on"),
		&gorm.Config{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	log.Info().Str("path", dbPath).Msg("Connected to database")

	db.AutoMigrate(&models.Settings{}, &models.ReadyCheck{}, &models.Signup{})
	log.Info().Msg("Migrated database")

	return db
}

// GetSettings gets the settings row for the given server, if any.
func GetSettings(guildID string, db *gorm.DB) (*models.Settings, error) {
	var settings models.Settings
	err := db.Where(
		&models.Settings{GuildID: guildID},
	).Take(&settings).Error

	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// SetDefaultChannel inserts or updates the server's default readycheck channel.
func SetDefaultChannel(guildID string, channelID string, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"default_channel_id"}),
	}).Create(&models.Settings{
		GuildID:          guildID,
		DefaultChannelID: channelID,
	}).Error
}

// ReplaceLeaderRoles replaces the server's full leader role set.
func ReplaceLeaderRoles(guildID string, roleIDs []string, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"leader_role_ids"}),
	}).Create(&models.Settings{
		GuildID:       guildID,
		LeaderRoleIDs: roleIDs,
	}).Error
}

// ReplaceParticipantRoles replaces the server's full participant role set.
func ReplaceParticipantRoles(guildID string, roleIDs []string, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"participant_role_ids"}),
	}).Create(&models.Settings{
		GuildID:            guildID,
		ParticipantRoleIDs: roleIDs,
	}).Error
}

// CreateReadyCheck inserts a new readycheck row, filling in its id.
func CreateReadyCheck(readyCheck *models.ReadyCheck, db *gorm.DB) error {
	return db.Create(readyCheck).Error
}

// SetReadyCheckMessage patches the row with the posted message's real id.
func SetReadyCheckMessage(id uint, messageID string, db *gorm.DB) error {
	return db.Model(&models.ReadyCheck{}).
		Where("id = ?", id).
		Update("message_id", messageID).Error
}

// GetActiveReadyCheck gets the active readycheck with the given id in the
// given server.
func GetActiveReadyCheck(
	id uint,
	guildID string,
	db *gorm.DB,
) (*models.ReadyCheck, error) {
	var readyCheck models.ReadyCheck
	err := db.Where(
		"id = ? AND guild_id = ? AND status = ?",
		id, guildID, models.StatusActive,
	).Take(&readyCheck).Error

	if err != nil {
		return nil, err
	}

	return &readyCheck, nil
}

// LatestActiveReadyCheck gets the most recently created active readycheck
// in the given channel.
func LatestActiveReadyCheck(
	channelID string,
	db *gorm.DB,
) (*models.ReadyCheck, error) {
	var readyCheck models.ReadyCheck
	err := db.Where(
		"channel_id = ? AND status = ?",
		channelID, models.StatusActive,
	).Order("id DESC").First(&readyCheck).Error

	if err != nil {
		return nil, err
	}

	return &readyCheck, nil
}

// RemoveReadyCheck flips the readycheck's status to removed. The row is
// kept; removed is the soft-delete marker.
func RemoveReadyCheck(id uint, db *gorm.DB) error {
	return db.Model(&models.ReadyCheck{}).
		Where("id = ?", id).
		Update("status", models.StatusRemoved).Error
}

// UpsertSignup inserts or fully overwrites the (user, readycheck) signup row.
func UpsertSignup(signup models.Signup, db *gorm.DB) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ready_check_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"guild_name", "class_name"}),
	}).Create(&signup).Error
}

// SetSignupGuild upserts only the guild column of the (user, readycheck)
// signup row, leaving a previously chosen class untouched. A fresh row gets
// the pending sentinel for its class. Assigning a single column in one
// statement means a concurrent class selection cannot be lost.
func SetSignupGuild(
	userID string,
	readyCheckID uint,
	guildName string,
	db *gorm.DB,
) (*models.Signup, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ready_check_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"guild_name"}),
	}).Create(&models.Signup{
		UserID:       userID,
		ReadyCheckID: readyCheckID,
		GuildName:    guildName,
		ClassName:    models.PendingField,
	}).Error

	if err != nil {
		return nil, err
	}

	return GetSignup(userID, readyCheckID, db)
}

// SetSignupClass upserts only the class column of the (user, readycheck)
// signup row, leaving a previously chosen guild untouched.
func SetSignupClass(
	userID string,
	readyCheckID uint,
	className string,
	db *gorm.DB,
) (*models.Signup, error) {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "ready_check_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"class_name"}),
	}).Create(&models.Signup{
		UserID:       userID,
		ReadyCheckID: readyCheckID,
		GuildName:    models.PendingField,
		ClassName:    className,
	}).Error

	if err != nil {
		return nil, err
	}

	return GetSignup(userID, readyCheckID, db)
}

// GetSignup gets the signup row for the given user & readycheck.
func GetSignup(
	userID string,
	readyCheckID uint,
	db *gorm.DB,
) (*models.Signup, error) {
	var signup models.Signup
	err := db.Where(
		&models.Signup{
			UserID:       userID,
			ReadyCheckID: readyCheckID,
		},
	).Take(&signup).Error

	if err != nil {
		return nil, err
	}

	return &signup, nil
}

// SignupsForReadyCheck returns all signup rows for the given readycheck,
// partial ones included.
func SignupsForReadyCheck(
	readyCheckID uint,
	db *gorm.DB,
) ([]models.Signup, error) {
	var signups []models.Signup
	err := db.Where(
		&models.Signup{ReadyCheckID: readyCheckID},
	).Find(&signups).Error

	if err != nil {
		return nil, err
	}

	return signups, nil
}
