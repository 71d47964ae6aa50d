package router

import (
	"time"

	tg "github.com/PetrKevich/bot/core/telegram"
	"github.com/PetrKevich/bot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM is a conversation that owns text updates of users with an active session.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls fallback behaviour for text and media updates.
type TextOptions struct {
	UnknownText  tele.HandlerFunc
	UnknownMedia tele.HandlerFunc
}

func senderID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}

// TextRoutes routes text to the conversation when the sender has a session in progress,
// then to a command typed without the menu, then to the registry fallback.
// Media updates reach the conversation only while a session is in progress.
func TextRoutes(fsm FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	text := func(c tele.Context) error {
		start := time.Now()
		if fsm != nil && fsm.InProgress(senderID(c)) {
			return handleWithSummary(c, "fsm", start, func() error { return fsm.ManagerHandler(c) })
		}
		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(c.Text()); ok && cmd.Visible() {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error { return cmd.Handler(c) })
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error { return fb(c) })
			}
		}
		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error { return opts.UnknownText(c) })
		}
		return handleWithSummary(c, "unknown_text", start, func() error { return errSkipped })
	}

	media := func(c tele.Context) error {
		start := time.Now()
		if fsm != nil && fsm.InProgress(senderID(c)) {
			return handleWithSummary(c, "fsm_media", start, func() error { return fsm.ManagerHandler(c) })
		}
		if opts.UnknownMedia != nil {
			return handleWithSummary(c, "unexpected_media", start, func() error { return opts.UnknownMedia(c) })
		}
		return handleWithSummary(c, "unexpected_media", start, func() error { return errSkipped })
	}

	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}
	routes := []tg.Route{{Endpoint: tele.OnText, Handler: wrap(text)}}
	for _, ep := range []string{tele.OnDocument, tele.OnPhoto, tele.OnSticker, tele.OnContact, tele.OnVoice} {
		routes = append(routes, tg.Route{Endpoint: ep, Handler: wrap(media)})
	}
	return routes
}
