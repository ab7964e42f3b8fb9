package bot

import (
	"fmt"

	"warhorn/discordutils"
	"warhorn/models"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type commandHandler = func(
	*discordgo.InteractionCreate,
	*gorm.DB,
)

var (
	selectNone = 0
	dmDisabled = false
)

var botCommands = []*discordgo.ApplicationCommand{
	{
		Name:         "readycheck",
		Description:  "Start a new war readycheck.",
		DMPermission: &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "war-name",
				Description: "Name of the war",
				Required:    true,
			}, {
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "guilds",
				Description: "Comma separated list of participating guilds (min 2)",
				Required:    true,
			}, {
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "start-time",
				Description: "Start time (unix timestamp or \"YYYY-MM-DD HH:MM\")",
				Required:    true,
			}, {
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to post in (defaults to configured or current)",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: false,
			},
		},
	}, {
		Name:         "remove",
		Description:  "Remove a readycheck.",
		DMPermission: &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "readycheck-id",
				Description: "ID of the readycheck (defaults to the active one in this channel)",
				Required:    false,
			},
		},
	}, {
		Name:         "signup",
		Description:  "Sign up for a war.",
		DMPermission: &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "guild",
				Description: "The guild you are playing with",
				Required:    true,
			}, {
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "class",
				Description: "Your class",
				Required:    true,
				Choices:     classChoices(),
			}, {
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "readycheck-id",
				Description: "Specific readycheck ID (defaults to the active one in this channel)",
				Required:    false,
			},
		},
	}, {
		Name:         "setup",
		Description:  "Configure bot settings for this server.",
		DMPermission: &dmDisabled,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Default channel for readychecks",
				ChannelTypes: []discordgo.ChannelType{
					discordgo.ChannelTypeGuildText,
				},
				Required: false,
			},
		},
	},
}

func classChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(models.Classes))
	for i, class := range models.Classes {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{
			Name:  class,
			Value: class,
		}
	}
	return choices
}

// Bot represents an instance of the Warhorn discord bot.
type Bot struct {
	session            *discordgo.Session
	registeredCommands []*discordgo.ApplicationCommand
	commandHandlers    map[string]commandHandler
}

func (bot *Bot) initSession(token string, db *gorm.DB) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create discord session")
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	session.AddHandler(func(*discordgo.Session, *discordgo.Ready) {
		log.Info().Msg("Bot is up!")
	})

	session.AddHandler(func(
		s *discordgo.Session,
		i *discordgo.InteractionCreate,
	) {
		if !guildInteraction(i) {
			return
		}

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			if handler, ok := bot.commandHandlers[i.ApplicationCommandData().Name]; ok {
				handler(i, db)
			}
		case discordgo.InteractionMessageComponent:
			bot.handleComponent(i, db)
		}
	})

	err = session.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session")
	}

	bot.session = session
}

func (bot *Bot) registerCommands(guildID string) {
	for _, command := range botCommands {
		newCommand, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			guildID,
			command,
		)
		bot.registeredCommands = append(bot.registeredCommands, newCommand)
		if err != nil {
			log.Fatal().Err(err).Str("command", command.Name).Msg("Failed to create command")
		}
		log.Info().Str("command", command.Name).Msg("Created command")
	}
}

// New initialises a new warhorn bot.
func New(
	token string,
	guildID string,
	db *gorm.DB,
) Bot {
	var bot Bot

	bot.commandHandlers = map[string]commandHandler{
		"readycheck": bot.ReadyCheck,
		"remove":     bot.Remove,
		"signup":     bot.Signup,
		"setup":      bot.Setup,
	}

	bot.initSession(token, db)
	bot.registerCommands(guildID)

	return bot
}

// Shutdown shuts down the bot cleanly.
func (bot *Bot) Shutdown(guildID string) {
	log.Info().Msg("Shutting down")

	for _, command := range bot.registeredCommands {
		err := bot.session.ApplicationCommandDelete(
			bot.session.State.User.ID,
			guildID,
			command.ID,
		)
		if err != nil {
			log.Warn().Err(err).Str("command", command.Name).Msg("Failed to delete command")
		} else {
			log.Info().Str("command", command.Name).Msg("Deleted command")
		}
	}

	bot.session.Close()
}

// guildInteraction reports whether an interaction came from a server
// channel. DM interactions carry no guild id and no member, only a user, so
// every handler's member access depends on this holding.
func guildInteraction(i *discordgo.InteractionCreate) bool {
	return i.GuildID != "" && i.Member != nil
}

func (bot *Bot) memberIsAdmin(i *discordgo.InteractionCreate) bool {
	guild, err := bot.session.State.Guild(i.GuildID)
	if err != nil {
		log.Warn().Str("guild", i.GuildID).Msg("Guild not found in state cache")
		return false
	}
	return discordutils.MemberHasAdminPermissions(guild, i.Member)
}

func signupButtonRow(readyCheckID uint) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Sign Up",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("%s:%d", componentSignupOpen, readyCheckID),
			},
		},
	}
}
