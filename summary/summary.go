// Package summary renders the posted roster document for a readycheck.
// Rendering is a pure function of the readycheck row and its signups, so
// the message can be regenerated from store state after every mutation.
package summary

import (
	"fmt"
	"strings"
	"time"

	"warhorn/models"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0xFF0000

// Discord rejects embed fields past 1024 characters; keep the member list
// of each guild group under this budget. The store retains every signup
// regardless of what is displayed.
const memberListBudget = 1000

// Embed builds the summary embed for a readycheck. Participating guilds are
// listed in their declared order; signups naming a guild outside that list
// are shown as their own trailing group rather than dropped. Signups still
// missing a guild or class selection are not rendered.
func Embed(readyCheck *models.ReadyCheck, signups []models.Signup) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("⚔️ WAR READYCHECK: %s", readyCheck.WarName),
		Description: fmt.Sprintf(
			"**Start Time**: <t:%d:F> (<t:%d:R>)\n**Created By**: <@%s>",
			readyCheck.StartTime,
			readyCheck.StartTime,
			readyCheck.CreatorID,
		),
		Color:     embedColor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("ID: %d | /signup to join", readyCheck.ID),
		},
	}

	for _, group := range groupSignups(readyCheck, signups) {
		embed.Fields = append(embed.Fields, groupField(group))
	}

	return embed
}

type guildGroup struct {
	name    string
	signups []models.Signup
}

// groupSignups buckets complete signups under the readycheck's declared
// guilds (case-insensitively), then appends a group per foreign guild name
// in first-seen order.
func groupSignups(readyCheck *models.ReadyCheck, signups []models.Signup) []guildGroup {
	groups := make([]guildGroup, len(readyCheck.Guilds))
	indexByFold := make(map[string]int)
	for i, guild := range readyCheck.Guilds {
		groups[i] = guildGroup{name: guild}
		indexByFold[strings.ToLower(guild)] = i
	}

	for _, signup := range signups {
		if !signup.Complete() {
			continue
		}

		fold := strings.ToLower(signup.GuildName)
		index, ok := indexByFold[fold]
		if !ok {
			index = len(groups)
			indexByFold[fold] = index
			groups = append(groups, guildGroup{name: signup.GuildName})
		}
		groups[index].signups = append(groups[index].signups, signup)
	}

	return groups
}

func groupField(group guildGroup) *discordgo.MessageEmbedField {
	counts := make(map[string]int)
	for _, signup := range group.signups {
		counts[signup.ClassName]++
	}

	var classParts []string
	for _, class := range models.Classes {
		if counts[class] > 0 {
			classParts = append(classParts, fmt.Sprintf("%s: %d", class, counts[class]))
		}
	}
	classSummary := "No classes yet"
	if len(classParts) > 0 {
		classSummary = strings.Join(classParts, ", ")
	}

	var memberLines []string
	for _, signup := range group.signups {
		memberLines = append(
			memberLines,
			fmt.Sprintf("<@%s> (%s)", signup.UserID, signup.ClassName),
		)
	}
	memberList := strings.Join(memberLines, "\n")
	if len(memberList) > memberListBudget {
		memberList = memberList[:memberListBudget-3] + "..."
	}
	if memberList == "" {
		memberList = "_No signups yet._"
	}

	return &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("%s (Total: %d)", group.name, len(group.signups)),
		Value:  fmt.Sprintf("**Classes**: %s\n\n%s", classSummary, memberList),
		Inline: false,
	}
}
