package dal_test

import (
	"path/filepath"
	"testing"

	"warhorn/dal"
	"warhorn/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dal.InitDB(filepath.Join(t.TempDir(), "test.db"))
}

func activeReadyCheck(channelID string, guilds ...string) *models.ReadyCheck {
	return &models.ReadyCheck{
		MessageID: models.PendingMessageID,
		ChannelID: channelID,
		GuildID:   "server",
		CreatorID: "creator",
		WarName:   "Siege1",
		StartTime: 1700000000,
		Status:    models.StatusActive,
		Guilds:    guilds,
	}
}

func TestCreateReadyCheckPreservesGuilds(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "beta", "GAMMA")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))
	require.NotZero(t, readyCheck.ID)

	stored, err := dal.GetActiveReadyCheck(readyCheck.ID, "server", db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "beta", "GAMMA"}, stored.Guilds)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.Equal(t, models.PendingMessageID, stored.MessageID)
}

func TestSetReadyCheckMessage(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	require.NoError(t, dal.SetReadyCheckMessage(readyCheck.ID, "msg-123", db))

	stored, err := dal.GetActiveReadyCheck(readyCheck.ID, "server", db)
	require.NoError(t, err)
	assert.Equal(t, "msg-123", stored.MessageID)
}

func TestGetActiveReadyCheckScopedToServer(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	_, err := dal.GetActiveReadyCheck(readyCheck.ID, "other-server", db)
	assert.Error(t, err)
}

func TestLatestActiveReadyCheck(t *testing.T) {
	db := testDB(t)

	first := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(first, db))
	second := activeReadyCheck("chan", "Gamma", "Delta")
	require.NoError(t, dal.CreateReadyCheck(second, db))
	elsewhere := activeReadyCheck("other-chan", "Epsilon", "Zeta")
	require.NoError(t, dal.CreateReadyCheck(elsewhere, db))

	latest, err := dal.LatestActiveReadyCheck("chan", db)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	// A removed event no longer resolves as latest.
	require.NoError(t, dal.RemoveReadyCheck(second.ID, db))

	latest, err = dal.LatestActiveReadyCheck("chan", db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)

	require.NoError(t, dal.RemoveReadyCheck(first.ID, db))

	_, err = dal.LatestActiveReadyCheck("chan", db)
	assert.Error(t, err)
}

func TestRemovedReadyCheckNoLongerActive(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	require.NoError(t, dal.RemoveReadyCheck(readyCheck.ID, db))

	_, err := dal.GetActiveReadyCheck(readyCheck.ID, "server", db)
	assert.Error(t, err)
}

func TestUpsertSignupOverwrites(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	require.NoError(t, dal.UpsertSignup(models.Signup{
		UserID:       "u1",
		ReadyCheckID: readyCheck.ID,
		GuildName:    "Alpha",
		ClassName:    "Warrior",
	}, db))
	require.NoError(t, dal.UpsertSignup(models.Signup{
		UserID:       "u1",
		ReadyCheckID: readyCheck.ID,
		GuildName:    "Beta",
		ClassName:    "Archer",
	}, db))

	signups, err := dal.SignupsForReadyCheck(readyCheck.ID, db)
	require.NoError(t, err)
	require.Len(t, signups, 1)
	assert.Equal(t, "Beta", signups[0].GuildName)
	assert.Equal(t, "Archer", signups[0].ClassName)
}

func TestPartialSignupUpserts(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	signup, err := dal.SetSignupGuild("u1", readyCheck.ID, "Alpha", db)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", signup.GuildName)
	assert.Equal(t, models.PendingField, signup.ClassName)
	assert.False(t, signup.Complete())

	signup, err = dal.SetSignupClass("u1", readyCheck.ID, "Warrior", db)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", signup.GuildName)
	assert.Equal(t, "Warrior", signup.ClassName)
	assert.True(t, signup.Complete())

	// Re-selecting one field keeps the other's previous value.
	signup, err = dal.SetSignupGuild("u1", readyCheck.ID, "Beta", db)
	require.NoError(t, err)
	assert.Equal(t, "Beta", signup.GuildName)
	assert.Equal(t, "Warrior", signup.ClassName)
	assert.True(t, signup.Complete())
}

func TestSetSignupClassFirst(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	signup, err := dal.SetSignupClass("u1", readyCheck.ID, "Trojan", db)
	require.NoError(t, err)
	assert.Equal(t, models.PendingField, signup.GuildName)
	assert.Equal(t, "Trojan", signup.ClassName)
	assert.False(t, signup.Complete())
}

func TestSignupsAreScopedPerUser(t *testing.T) {
	db := testDB(t)

	readyCheck := activeReadyCheck("chan", "Alpha", "Beta")
	require.NoError(t, dal.CreateReadyCheck(readyCheck, db))

	require.NoError(t, dal.UpsertSignup(models.Signup{
		UserID: "u1", ReadyCheckID: readyCheck.ID, GuildName: "Alpha", ClassName: "Warrior",
	}, db))
	require.NoError(t, dal.UpsertSignup(models.Signup{
		UserID: "u2", ReadyCheckID: readyCheck.ID, GuildName: "Beta", ClassName: "Archer",
	}, db))

	signups, err := dal.SignupsForReadyCheck(readyCheck.ID, db)
	require.NoError(t, err)
	assert.Len(t, signups, 2)
}

func TestSettingsUpsertsPreserveOtherFields(t *testing.T) {
	db := testDB(t)

	require.NoError(t, dal.SetDefaultChannel("server", "chan-1", db))
	require.NoError(t, dal.ReplaceLeaderRoles("server", []string{"r1", "r2"}, db))
	require.NoError(t, dal.ReplaceParticipantRoles("server", []string{"r3"}, db))

	settings, err := dal.GetSettings("server", db)
	require.NoError(t, err)
	assert.Equal(t, "chan-1", settings.DefaultChannelID)
	assert.Equal(t, []string{"r1", "r2"}, settings.LeaderRoleIDs)
	assert.Equal(t, []string{"r3"}, settings.ParticipantRoleIDs)

	// Each selection replaces that class's whole set.
	require.NoError(t, dal.ReplaceLeaderRoles("server", []string{"r9"}, db))

	settings, err = dal.GetSettings("server", db)
	require.NoError(t, err)
	assert.Equal(t, []string{"r9"}, settings.LeaderRoleIDs)
	assert.Equal(t, []string{"r3"}, settings.ParticipantRoleIDs)
	assert.Equal(t, "chan-1", settings.DefaultChannelID)
}

func TestGetSettingsMissingRow(t *testing.T) {
	db := testDB(t)

	_, err := dal.GetSettings("unconfigured", db)
	assert.Error(t, err)
}
