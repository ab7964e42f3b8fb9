package bot

import (
	"fmt"
	"strings"
	"time"

	"warhorn/dal"
	"warhorn/discordutils"
	"warhorn/models"
	"warhorn/summary"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ReadyCheck starts a new war readycheck: it validates leader permission
// and arguments, persists the event, posts its summary message and patches
// the row with the posted message's id.
func (bot *Bot) ReadyCheck(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	settings, _ := dal.GetSettings(i.GuildID, db)

	if !IsWarLeader(bot.memberIsAdmin(i), leaderRoles(settings), i.Member.Roles) {
		discordutils.SendFollowup(
			"You do not have permission to start readychecks.",
			i.Interaction,
			bot.session,
		)
		return
	}

	options := optionMap(i)

	guilds, err := ParseGuildList(options["guilds"].StringValue())
	if err != nil {
		discordutils.SendFollowup(
			"You must specify at least 2 guilds, separated by commas.",
			i.Interaction,
			bot.session,
		)
		return
	}

	startTime, err := ParseStartTime(options["start-time"].StringValue())
	if err != nil {
		discordutils.SendFollowup(
			"Invalid start time format. Please use a unix timestamp or a date like \"2026-09-01 20:00\".",
			i.Interaction,
			bot.session,
		)
		return
	}

	channelID := i.ChannelID
	if settings != nil && settings.DefaultChannelID != "" {
		channelID = settings.DefaultChannelID
	}
	if option, ok := options["channel"]; ok {
		channelID = option.ChannelValue(nil).ID
	}

	readyCheck := models.ReadyCheck{
		MessageID: models.PendingMessageID,
		ChannelID: channelID,
		GuildID:   i.GuildID,
		CreatorID: i.Member.User.ID,
		WarName:   options["war-name"].StringValue(),
		StartTime: startTime,
		Status:    models.StatusActive,
		Guilds:    guilds,
	}

	if err := dal.CreateReadyCheck(&readyCheck, db); err != nil {
		log.Error().Err(err).Msg("Failed to create readycheck")
		discordutils.SendFollowup(
			fmt.Sprintf("Failed to create readycheck: %v", err),
			i.Interaction,
			bot.session,
		)
		return
	}

	message, err := bot.session.ChannelMessageSendComplex(
		channelID,
		&discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{summary.Embed(&readyCheck, nil)},
			Components: []discordgo.MessageComponent{signupButtonRow(readyCheck.ID)},
		},
	)
	if err != nil {
		// The row stays behind with its placeholder message id; no rollback.
		log.Error().
			Err(err).
			Uint("readycheck", readyCheck.ID).
			Str("channel", channelID).
			Msg("Failed to post summary message")
		discordutils.SendFollowup(
			fmt.Sprintf(
				"Readycheck created, but I could not post in <#%s>. Check my permissions there.",
				channelID,
			),
			i.Interaction,
			bot.session,
		)
		return
	}

	if err := dal.SetReadyCheckMessage(readyCheck.ID, message.ID, db); err != nil {
		log.Error().
			Err(err).
			Uint("readycheck", readyCheck.ID).
			Msg("Failed to record summary message id")
	}

	discordutils.SendFollowup(
		fmt.Sprintf(
			"Readycheck created in <#%s>! War starts %s.",
			channelID,
			humanize.Time(time.Unix(startTime, 0)),
		),
		i.Interaction,
		bot.session,
	)
}

// Remove flips a readycheck to removed and best-effort replaces its posted
// message with a removal banner. Only administrators and the creator may
// remove an event; the store update stands even if the banner edit fails.
func (bot *Bot) Remove(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	readyCheck, err := bot.resolveReadyCheck(i, db)
	if err != nil {
		discordutils.SendFollowup(
			"No active readycheck found to remove.",
			i.Interaction,
			bot.session,
		)
		return
	}

	if !bot.memberIsAdmin(i) && readyCheck.CreatorID != i.Member.User.ID {
		discordutils.SendFollowup(
			"You can only remove readychecks you created (unless you are an admin).",
			i.Interaction,
			bot.session,
		)
		return
	}

	if err := dal.RemoveReadyCheck(readyCheck.ID, db); err != nil {
		log.Error().Err(err).Uint("readycheck", readyCheck.ID).Msg("Failed to remove readycheck")
		discordutils.SendFollowup(
			fmt.Sprintf("Failed to remove readycheck: %v", err),
			i.Interaction,
			bot.session,
		)
		return
	}

	banner := fmt.Sprintf("**READYCHECK REMOVED** by %s", i.Member.Mention())
	_, err = bot.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    readyCheck.ChannelID,
		ID:         readyCheck.MessageID,
		Content:    &banner,
		Embeds:     &[]*discordgo.MessageEmbed{},
		Components: &[]discordgo.MessageComponent{},
	})
	if err != nil {
		log.Warn().
			Err(err).
			Uint("readycheck", readyCheck.ID).
			Msg("Failed to edit removed readycheck's message")
	}

	discordutils.SendFollowup(
		fmt.Sprintf("Readycheck '%s' removed.", readyCheck.WarName),
		i.Interaction,
		bot.session,
	)
}

// Signup records a user's guild and class for a readycheck in one shot,
// overwriting any prior selection, then refreshes the posted summary.
func (bot *Bot) Signup(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
) {
	discordutils.AckInteraction(i.Interaction, bot.session)

	settings, _ := dal.GetSettings(i.GuildID, db)

	if !CanParticipate(participantRoles(settings), i.Member.Roles) {
		discordutils.SendFollowup(
			"You do not have the participant role required to sign up.",
			i.Interaction,
			bot.session,
		)
		return
	}

	readyCheck, err := bot.resolveReadyCheck(i, db)
	if err != nil {
		discordutils.SendFollowup(
			"No active readycheck found in this channel. Please specify an ID if it is elsewhere.",
			i.Interaction,
			bot.session,
		)
		return
	}

	options := optionMap(i)

	guildName, ok := readyCheck.ResolveGuild(options["guild"].StringValue())
	if !ok {
		discordutils.SendFollowup(
			fmt.Sprintf(
				"Invalid guild. Choose one of: %s",
				strings.Join(readyCheck.Guilds, ", "),
			),
			i.Interaction,
			bot.session,
		)
		return
	}

	className := options["class"].StringValue()
	if !models.IsClass(className) {
		discordutils.SendFollowup(
			fmt.Sprintf(
				"Invalid class. Choose one of: %s",
				strings.Join(models.Classes, ", "),
			),
			i.Interaction,
			bot.session,
		)
		return
	}

	err = dal.UpsertSignup(
		models.Signup{
			UserID:       i.Member.User.ID,
			ReadyCheckID: readyCheck.ID,
			GuildName:    guildName,
			ClassName:    className,
		},
		db,
	)
	if err != nil {
		log.Error().Err(err).Uint("readycheck", readyCheck.ID).Msg("Failed to save signup")
		discordutils.SendFollowup(
			fmt.Sprintf("Failed to save your signup: %v", err),
			i.Interaction,
			bot.session,
		)
		return
	}

	if err := bot.refreshSummary(readyCheck, db); err != nil {
		log.Warn().Err(err).Uint("readycheck", readyCheck.ID).Msg("Failed to refresh summary")
		discordutils.SendFollowup(
			"Signed up, but failed to update the posted summary.",
			i.Interaction,
			bot.session,
		)
		return
	}

	discordutils.SendFollowup(
		fmt.Sprintf("Signed up as **%s** for **%s**!", className, guildName),
		i.Interaction,
		bot.session,
	)
}

// Setup configures the bot for a server: an optional default channel is
// persisted immediately, and role selection happens through the two
// multi-selects attached to the reply.
func (bot *Bot) Setup(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
) {
	if !bot.memberIsAdmin(i) {
		discordutils.RespondEphemeral("Nice try.", i.Interaction, bot.session)
		return
	}

	options := optionMap(i)

	channelNote := "Unchanged (or none)"
	if option, ok := options["channel"]; ok {
		channelID := option.ChannelValue(nil).ID
		if err := dal.SetDefaultChannel(i.GuildID, channelID, db); err != nil {
			log.Error().Err(err).Str("guild", i.GuildID).Msg("Failed to save default channel")
			discordutils.RespondEphemeral(
				fmt.Sprintf("Failed to save default channel: %v", err),
				i.Interaction,
				bot.session,
			)
			return
		}
		channelNote = fmt.Sprintf("<#%s>", channelID)
	}

	embed := &discordgo.MessageEmbed{
		Title: "Warhorn Setup",
		Description: "Select the roles allowed to manage and participate in wars.\n" +
			"Selections are saved automatically.",
		Color: 0x0099FF,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Default Channel", Value: channelNote},
		},
	}

	discordutils.RespondEphemeralComplex(
		&discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				roleSelectRow(componentSetupLeaderRoles, "Select Leader Roles"),
				roleSelectRow(componentSetupParticipantRoles, "Select Participant Roles"),
			},
		},
		i.Interaction,
		bot.session,
	)
}

func roleSelectRow(customID string, placeholder string) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.RoleSelectMenu,
				CustomID:    customID,
				Placeholder: placeholder,
				MinValues:   &selectNone,
				MaxValues:   25,
			},
		},
	}
}

// resolveReadyCheck finds the readycheck an interaction targets: the
// explicit readycheck-id option if given, otherwise the latest active event
// in the invoking channel.
func (bot *Bot) resolveReadyCheck(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
) (*models.ReadyCheck, error) {
	if option, ok := optionMap(i)["readycheck-id"]; ok {
		return dal.GetActiveReadyCheck(uint(option.IntValue()), i.GuildID, db)
	}
	return dal.LatestActiveReadyCheck(i.ChannelID, db)
}

// refreshSummary regenerates the posted summary message from store state.
func (bot *Bot) refreshSummary(readyCheck *models.ReadyCheck, db *gorm.DB) error {
	if readyCheck.MessageID == models.PendingMessageID {
		return fmt.Errorf("summary message for readycheck %d was never posted", readyCheck.ID)
	}

	signups, err := dal.SignupsForReadyCheck(readyCheck.ID, db)
	if err != nil {
		return err
	}

	_, err = bot.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: readyCheck.ChannelID,
		ID:      readyCheck.MessageID,
		Embeds:  &[]*discordgo.MessageEmbed{summary.Embed(readyCheck, signups)},
	})
	return err
}

func optionMap(
	i *discordgo.InteractionCreate,
) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	mapped := make(
		map[string]*discordgo.ApplicationCommandInteractionDataOption,
		len(options),
	)
	for _, option := range options {
		mapped[option.Name] = option
	}
	return mapped
}
