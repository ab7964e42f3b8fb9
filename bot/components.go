package bot

import (
	"fmt"
	"strconv"
	"strings"

	"warhorn/dal"
	"warhorn/discordutils"
	"warhorn/models"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Component custom ids. The signup ids carry the readycheck id after a colon.
const (
	componentSetupLeaderRoles      = "setup-leader-roles"
	componentSetupParticipantRoles = "setup-participant-roles"
	componentSignupOpen            = "signup-open"
	componentSignupGuild           = "signup-guild"
	componentSignupClass           = "signup-class"
)

func (bot *Bot) handleComponent(i *discordgo.InteractionCreate, db *gorm.DB) {
	data := i.MessageComponentData()
	name, arg, _ := strings.Cut(data.CustomID, ":")

	switch name {
	case componentSetupLeaderRoles:
		bot.setupRoles(i, db, data.Values, "Leader")
	case componentSetupParticipantRoles:
		bot.setupRoles(i, db, data.Values, "Participant")
	case componentSignupOpen:
		bot.signupOpen(i, db, arg)
	case componentSignupGuild:
		bot.signupSelect(i, db, arg, data.Values, true)
	case componentSignupClass:
		bot.signupSelect(i, db, arg, data.Values, false)
	}
}

// setupRoles persists a role multi-select as the full replacement set for
// the given permission class. The selects live in the ephemeral reply to
// the admin-gated /setup, so no further permission check is done here.
func (bot *Bot) setupRoles(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
	roleIDs []string,
	class string,
) {
	var err error
	if class == "Leader" {
		err = dal.ReplaceLeaderRoles(i.GuildID, roleIDs, db)
	} else {
		err = dal.ReplaceParticipantRoles(i.GuildID, roleIDs, db)
	}

	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("Failed to save role settings")
		discordutils.RespondEphemeral("Failed to save settings.", i.Interaction, bot.session)
		return
	}

	mention := "none"
	if len(roleIDs) > 0 {
		mentions := make([]string, len(roleIDs))
		for index, roleID := range roleIDs {
			mentions[index] = fmt.Sprintf("<@&%s>", roleID)
		}
		mention = strings.Join(mentions, ", ")
	}

	discordutils.RespondEphemeral(
		fmt.Sprintf("Updated %s roles: %s", class, mention),
		i.Interaction,
		bot.session,
	)
}

// signupOpen answers the summary message's Sign Up button with the two
// independent selects of the two-step flow.
func (bot *Bot) signupOpen(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
	arg string,
) {
	readyCheck, ok := bot.activeReadyCheckFromArg(i, db, arg)
	if !ok {
		return
	}

	settings, _ := dal.GetSettings(i.GuildID, db)
	if !CanParticipate(participantRoles(settings), i.Member.Roles) {
		discordutils.RespondEphemeral(
			"You do not have the participant role required to sign up.",
			i.Interaction,
			bot.session,
		)
		return
	}

	guildOptions := make([]discordgo.SelectMenuOption, len(readyCheck.Guilds))
	for index, guild := range readyCheck.Guilds {
		guildOptions[index] = discordgo.SelectMenuOption{Label: guild, Value: guild}
	}

	classOptions := make([]discordgo.SelectMenuOption, len(models.Classes))
	for index, class := range models.Classes {
		classOptions[index] = discordgo.SelectMenuOption{Label: class, Value: class}
	}

	discordutils.RespondEphemeralComplex(
		&discordgo.InteractionResponseData{
			Content: fmt.Sprintf(
				"Signing up for **%s** — pick your guild and class, in either order.",
				readyCheck.WarName,
			),
			Components: []discordgo.MessageComponent{
				stringSelectRow(
					fmt.Sprintf("%s:%d", componentSignupGuild, readyCheck.ID),
					"Select your guild",
					guildOptions,
				),
				stringSelectRow(
					fmt.Sprintf("%s:%d", componentSignupClass, readyCheck.ID),
					"Select your class",
					classOptions,
				),
			},
		},
		i.Interaction,
		bot.session,
	)
}

// signupSelect handles one half of the two-step flow. Only the chosen field
// is written; a previous choice of the other field survives. The public
// summary is refreshed once the signup is complete.
func (bot *Bot) signupSelect(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
	arg string,
	values []string,
	isGuild bool,
) {
	if len(values) == 0 {
		return
	}

	readyCheck, ok := bot.activeReadyCheckFromArg(i, db, arg)
	if !ok {
		return
	}

	settings, _ := dal.GetSettings(i.GuildID, db)
	if !CanParticipate(participantRoles(settings), i.Member.Roles) {
		discordutils.RespondEphemeral(
			"You do not have the participant role required to sign up.",
			i.Interaction,
			bot.session,
		)
		return
	}

	var signup *models.Signup
	var err error

	if isGuild {
		guildName, found := readyCheck.ResolveGuild(values[0])
		if !found {
			discordutils.RespondEphemeral(
				fmt.Sprintf(
					"Invalid guild. Choose one of: %s",
					strings.Join(readyCheck.Guilds, ", "),
				),
				i.Interaction,
				bot.session,
			)
			return
		}
		signup, err = dal.SetSignupGuild(i.Member.User.ID, readyCheck.ID, guildName, db)
	} else {
		if !models.IsClass(values[0]) {
			discordutils.RespondEphemeral(
				fmt.Sprintf(
					"Invalid class. Choose one of: %s",
					strings.Join(models.Classes, ", "),
				),
				i.Interaction,
				bot.session,
			)
			return
		}
		signup, err = dal.SetSignupClass(i.Member.User.ID, readyCheck.ID, values[0], db)
	}

	if err != nil {
		log.Error().Err(err).Uint("readycheck", readyCheck.ID).Msg("Failed to save signup")
		discordutils.RespondEphemeral("Failed to save your signup.", i.Interaction, bot.session)
		return
	}

	if !signup.Complete() {
		var nudge string
		if isGuild {
			nudge = fmt.Sprintf("Guild locked in as **%s**. Now pick your class.", signup.GuildName)
		} else {
			nudge = fmt.Sprintf("Class locked in as **%s**. Now pick your guild.", signup.ClassName)
		}
		discordutils.RespondEphemeral(nudge, i.Interaction, bot.session)
		return
	}

	if err := bot.refreshSummary(readyCheck, db); err != nil {
		log.Warn().Err(err).Uint("readycheck", readyCheck.ID).Msg("Failed to refresh summary")
		discordutils.RespondEphemeral(
			"Signed up, but failed to update the posted summary.",
			i.Interaction,
			bot.session,
		)
		return
	}

	discordutils.RespondEphemeral(
		fmt.Sprintf("Signed up as **%s** for **%s**!", signup.ClassName, signup.GuildName),
		i.Interaction,
		bot.session,
	)
}

// activeReadyCheckFromArg resolves the readycheck id embedded in a
// component's custom id and checks the event is still active.
func (bot *Bot) activeReadyCheckFromArg(
	i *discordgo.InteractionCreate,
	db *gorm.DB,
	arg string,
) (*models.ReadyCheck, bool) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		log.Warn().Str("arg", arg).Msg("Malformed readycheck id in component")
		discordutils.RespondEphemeral(
			"This readycheck is no longer valid.",
			i.Interaction,
			bot.session,
		)
		return nil, false
	}

	readyCheck, err := dal.GetActiveReadyCheck(uint(id), i.GuildID, db)
	if err != nil {
		discordutils.RespondEphemeral(
			"This readycheck is no longer active.",
			i.Interaction,
			bot.session,
		)
		return nil, false
	}

	return readyCheck, true
}

func stringSelectRow(
	customID string,
	placeholder string,
	options []discordgo.SelectMenuOption,
) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    customID,
				Placeholder: placeholder,
				Options:     options,
			},
		},
	}
}
