package bot

import (
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/PetrKevich/bot/core/telegram/helpers"
	"github.com/PetrKevich/bot/internal/dialog"
	"github.com/PetrKevich/bot/internal/order"
)

// Conversation connects Telegram updates to the dialog service.
type Conversation struct {
	svc      *dialog.Service
	labels   *Classifier
	renderer *Renderer
	send     func(c tele.Context, msgs []Message) error
}

// NewConversation wires the service to a classifier and renderer built from the same catalog.
func NewConversation(svc *dialog.Service, labels *Classifier, renderer *Renderer) *Conversation {
	return &Conversation{svc: svc, labels: labels, renderer: renderer, send: sendMessages}
}

// InProgress reports whether the user has an unfinished order.
func (cv *Conversation) InProgress(userID int64) bool {
	return cv.svc.InProgress(userID)
}

// ManagerHandler feeds the message text to the user's conversation.
func (cv *Conversation) ManagerHandler(c tele.Context) error {
	return cv.handle(c, cv.labels.Classify(c.Text()))
}

// Start begins a new order, dropping any unfinished one.
func (cv *Conversation) Start(c tele.Context) error {
	return cv.handle(c, dialog.Input{Kind: dialog.KindRestart, Text: c.Text()})
}

// Cancel drops the unfinished order.
func (cv *Conversation) Cancel(c tele.Context) error {
	return cv.handle(c, dialog.Input{Kind: dialog.KindCancel, Text: c.Text()})
}

func (cv *Conversation) handle(c tele.Context, in dialog.Input) error {
	ctx := helpers.BuildContext(c)
	return cv.svc.Respond(ctx, customerOf(c.Sender()), in, func(reply dialog.Reply) error {
		return cv.send(c, cv.renderer.Render(reply))
	})
}

func customerOf(u *tele.User) order.Customer {
	if u == nil {
		return order.Customer{}
	}
	return order.Customer{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Language:  u.LanguageCode,
	}
}

// sendMessages enqueues the messages in order; the sender keeps per-chat FIFO.
func sendMessages(c tele.Context, msgs []Message) error {
	var errs []error
	for _, m := range msgs {
		var err error
		switch {
		case len(m.Photos) > 0:
			err = helpers.SendAlbum(c, m.Photos)
		case m.Markdown:
			err = helpers.SendMD(c, m.Text, m.Markup)
		default:
			err = helpers.SendText(c, m.Text, &tele.SendOptions{ReplyMarkup: m.Markup})
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
