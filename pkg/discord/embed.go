// Package discord renders classroom values as Discord message embeds.
package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hashicorp-forge/classbridge/pkg/classroom"
)

// Accent colors, matching discord.py's Color.green() and Color.blue().
const (
	ColorCourse = 0x2ecc71
	ColorPost   = 0x3498db
)

// Discord rejects embeds whose description exceeds this many characters.
const maxDescriptionLen = 4096

// CourseEmbed returns an embed titled with the course name.
func CourseEmbed(c *classroom.Course) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Title: c.Name(),
		URL:   c.AlternateLink(),
		Color: ColorCourse,
	}
	if section := c.Section(); section != "" {
		embed.Description = section
	}
	return embed
}

// PostEmbed returns an embed for an announcement, coursework item or
// material.
func PostEmbed(p classroom.Post) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       p.Headline(),
		URL:         p.Link(),
		Description: truncate(p.Detail(), maxDescriptionLen),
		Color:       ColorPost,
		Footer:      &discordgo.MessageEmbedFooter{Text: string(p.Kind())},
	}

	switch v := p.(type) {
	case *classroom.Coursework:
		if due := v.Due(); due != nil {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:   "Due",
				Value:  due.String(),
				Inline: true,
			})
		}
	case *classroom.Announcement:
		if created := v.CreationTime(); !created.IsZero() {
			embed.Timestamp = created.Format(time.RFC3339)
		}
	}

	return embed
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
