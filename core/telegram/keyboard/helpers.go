// Package keyboard builds Telegram reply and inline markups.
package keyboard

import tele "gopkg.in/telebot.v4"

// Option adjusts a reply keyboard.
type Option func(*tele.ReplyMarkup)

// OneTime hides the keyboard after the first tap.
func OneTime() Option {
	return func(m *tele.ReplyMarkup) { m.OneTimeKeyboard = true }
}

// Placeholder sets the hint shown in the input field while the keyboard is open.
func Placeholder(text string) Option {
	return func(m *tele.ReplyMarkup) { m.Placeholder = text }
}

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a resized reply keyboard; each inner slice is one row of labels.
func ReplyButtons(rows [][]string, opts ...Option) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		buttons := make([]tele.Btn, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	for _, opt := range opts {
		opt(markup)
	}
	return markup
}

// Chunk splits labels into rows of at most n.
func Chunk(labels []string, n int) [][]string {
	if n <= 0 {
		n = 1
	}
	rows := make([][]string, 0, (len(labels)+n-1)/n)
	for i := 0; i < len(labels); i += n {
		rows = append(rows, labels[i:min(i+n, len(labels))])
	}
	return rows
}

// URLButton returns an inline keyboard with a single link button.
func URLButton(text, url string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.URL(text, url)))
	return markup
}
