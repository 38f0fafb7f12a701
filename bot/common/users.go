package common

import (
	"github.com/bwmarrin/discordgo"
)

// InteractionUser returns the invoking user for guild and DM interactions alike
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's ID, or empty when unknown
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// UserDisplayName returns the global display name, falling back to the username
func UserDisplayName(user *discordgo.User) string {
	if user == nil {
		return "Unknown"
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// MessageDisplayName returns the server nickname of a message author when known
func MessageDisplayName(m *discordgo.Message) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	return UserDisplayName(m.Author)
}

// MessageAvatarURL returns the author's avatar URL
func MessageAvatarURL(m *discordgo.Message) string {
	if m.Author == nil {
		return ""
	}
	return m.Author.AvatarURL("")
}
