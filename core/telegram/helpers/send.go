package helpers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/PetrKevich/bot/core/logger"
	"github.com/PetrKevich/bot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
// With no dispatcher the helpers send synchronously.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func enqueue(ctx context.Context, chatID int64, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}
	err := disp.EnqueueFor(ctx, chatID, action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, logger.CompSender, "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			logger.Err(err),
		)
		return run()
	}
	return err
}

func chatOf(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if user := c.Sender(); user != nil {
		return user.ID
	}
	return 0
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	return enqueue(BuildContext(c), chatOf(c), "send.text", "sendMessage", func() error {
		if sendOpts != nil {
			return c.Send(text, sendOpts)
		}
		return c.Send(text)
	})
}

// SendMD sends a message with Markdown parse mode and optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return SendText(c, text, &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm})
}

// SendAlbum sends up to ten photos as one media group.
func SendAlbum(c tele.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	album := make(tele.Album, 0, min(len(urls), 10))
	for _, u := range urls[:min(len(urls), 10)] {
		album = append(album, &tele.Photo{File: tele.FromURL(u)})
	}
	return enqueue(BuildContext(c), chatOf(c), "send.album", "sendMediaGroup", func() error {
		return c.SendAlbum(album)
	})
}

// SendTo delivers a Markdown message to an arbitrary chat, for example an operators' group.
// The message keeps FIFO order with other messages to the same chat.
func SendTo(ctx context.Context, bot tele.API, chatID int64, text string, markup *tele.ReplyMarkup) error {
	if bot == nil {
		return errors.New("telegram: nil bot")
	}
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: markup, DisableWebPagePreview: true}
	return enqueue(ctx, chatID, "send.to", "sendMessage", func() error {
		_, err := bot.Send(tele.ChatID(chatID), text, opts)
		return err
	})
}
