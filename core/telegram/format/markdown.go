// Package format prepares user-supplied text for Telegram parse modes.
package format

import (
	"fmt"
	"regexp"
)

// Version selects the Telegram Markdown dialect.
type Version int

const (
	// MarkdownV1 denotes Telegram markdown version 1.
	MarkdownV1 Version = 1
	// MarkdownV2 denotes Telegram markdown version 2.
	MarkdownV2 Version = 2
)

var (
	mdV1Specials = regexp.MustCompile("([_*`\\[])")
	mdV2Specials = regexp.MustCompile(`([_*\[\]()~` + "`" + `>#+\-=|{}.!\\])`)
)

// EscapeMarkdown escapes the characters that carry meaning in the given dialect.
func EscapeMarkdown(text string, version Version) (string, error) {
	switch version {
	case MarkdownV1:
		return mdV1Specials.ReplaceAllString(text, `\$1`), nil
	case MarkdownV2:
		return mdV2Specials.ReplaceAllString(text, `\$1`), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}

// Escape is EscapeMarkdown for the legacy dialect used by the bot's messages.
func Escape(text string) string {
	return mdV1Specials.ReplaceAllString(text, `\$1`)
}
