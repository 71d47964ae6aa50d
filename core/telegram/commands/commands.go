// Package commands describes slash commands exposed by the bot.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a bot command with its handler, description, and metadata.
// Hidden commands work but are left out of the Telegram menu; AdminOnly implies Hidden.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Visible reports whether the command belongs in the Telegram command menu.
func (c Command) Visible() bool {
	return !c.Hidden && !c.AdminOnly
}
