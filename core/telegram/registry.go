package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PetrKevich/bot/core/logger"
	"github.com/PetrKevich/bot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// Entry is a registered command together with its canonical name.
type Entry struct {
	Name    string
	Command commands.Command
}

// Registry holds bot commands in registration order plus the text fallback.
// It is filled during start-up and read-only afterwards.
type Registry struct {
	entries      []Entry
	index        map[string]int
	textFallback tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// RegisterCommand adds a command. Names must start with a slash; duplicates are rejected.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) error {
	var reason string
	switch {
	case r == nil:
		return fmt.Errorf("register %s: nil registry", name)
	case name == "" || cmd.Handler == nil || cmd.Description == "":
		reason = "invalid"
	case name[0] != '/':
		reason = "no_slash_prefix"
	}
	if _, exists := r.index[name]; reason == "" && exists {
		reason = "duplicate"
	}
	if reason != "" {
		logger.Warn(context.Background(), logger.CompWire, "register.command.skip",
			slog.String("name", name),
			slog.String("cause", reason),
		)
		return fmt.Errorf("register %s: %s", name, reason)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Command: cmd})
	return nil
}

// ListCommands returns commands for the Telegram menu in registration order.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	list := make([]tele.Command, 0, len(r.entries))
	for _, e := range r.entries {
		if visibleOnly && !e.Command.Visible() {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(e.Name, "/"), Description: e.Command.Description})
	}
	return list
}

// LookupCommand searches for a command by name or alias and returns its canonical name.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if i, ok := r.index[name]; ok {
		return name, r.entries[i].Command, true
	}
	for _, e := range r.entries {
		for _, alias := range e.Command.Aliases {
			if alias == name || "/"+alias == name {
				return e.Name, e.Command, true
			}
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []Entry {
	return append([]Entry(nil), r.entries...)
}

// SetTextFallback sets the handler for text that no conversation or command claimed.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the current text fallback handler.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// InitBotCommands publishes the visible commands as the Telegram command menu.
func InitBotCommands(bot tele.API, reg *Registry) error {
	list := reg.ListCommands(true)
	if err := bot.SetCommands(list); err != nil {
		logger.Error(context.Background(), logger.CompWire, "register.commands.set_failed", logger.Err(err))
		return fmt.Errorf("telegram: set commands: %w", err)
	}
	logger.Info(context.Background(), logger.CompWire, "register.commands.set", slog.Int("count", len(list)))
	return nil
}
