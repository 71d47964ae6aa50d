package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/PetrKevich/bot/core/telegram/format"
	"github.com/PetrKevich/bot/core/telegram/helpers"
	"github.com/PetrKevich/bot/core/telegram/keyboard"
	"github.com/PetrKevich/bot/internal/handoff"
	"github.com/PetrKevich/bot/internal/order"
)

// ErrNotAttached is returned by ManagerNotifier before the bot is running.
var ErrNotAttached = errors.New("manager notifier: bot not attached")

// ManagerNotifier is a handoff.Sink that posts completed orders to the managers' chat.
// Messages go through the sender queue, so Deliver returns once they are enqueued.
type ManagerNotifier struct {
	chatID int64
	bot    atomic.Pointer[tele.API]
}

// NewManagerNotifier targets chatID. Attach must be called once the bot exists.
func NewManagerNotifier(chatID int64) *ManagerNotifier {
	return &ManagerNotifier{chatID: chatID}
}

// Attach sets the bot used for sending.
func (n *ManagerNotifier) Attach(bot tele.API) {
	if bot == nil {
		return
	}
	n.bot.Store(&bot)
}

// Name implements handoff.Sink.
func (n *ManagerNotifier) Name() string { return "manager" }

// Deliver implements handoff.Sink.
func (n *ManagerNotifier) Deliver(ctx context.Context, p handoff.Payload) error {
	bp := n.bot.Load()
	if bp == nil {
		return ErrNotAttached
	}
	bot := *bp
	if err := helpers.SendTo(ctx, bot, n.chatID, OrderMessage(p), nil); err != nil {
		return fmt.Errorf("send order: %w", err)
	}
	var markup *tele.ReplyMarkup
	if p.Customer.Username != "" {
		markup = keyboard.URLButton("✉️ Написать клиенту", "https://t.me/"+p.Customer.Username)
	}
	if err := helpers.SendTo(ctx, bot, n.chatID, CustomerMessage(p.Customer), markup); err != nil {
		return fmt.Errorf("send customer: %w", err)
	}
	return nil
}

// CategoryTitle is the button label the customer picked.
func CategoryTitle(c order.Category, p order.Premises) string {
	switch c {
	case order.CategoryApartmentOrHouse:
		if p == order.PremisesHouse {
			return LabelHouse
		}
		return LabelApartment
	case order.CategoryPostRenovation:
		return LabelPostRenovation
	case order.CategoryWindows:
		return LabelWindows
	case order.CategoryDryCleaning:
		return LabelDryCleaning
	case order.CategoryCommercial:
		return LabelCommercial
	}
	return string(c)
}

// OrderMessage formats the order block of the managers' notification.
func OrderMessage(p handoff.Payload) string {
	var b strings.Builder
	b.WriteString("📌 *Новый заказ!*\n\n")
	fmt.Fprintf(&b, "Номер: `%s`\n", p.ShortID())
	fmt.Fprintf(&b, "Тип уборки: %s\n", CategoryTitle(p.Category, p.Premises))
	for _, l := range p.Lines {
		if l.Informational {
			b.WriteString(format.Escape(l.Description) + "\n")
			continue
		}
		b.WriteString(format.Escape(l.Description) + ": " + Money(l.Cost) + "₽\n")
	}
	if p.Individual() {
		b.WriteString("\n*Итого: по запросу*\n")
	} else {
		fmt.Fprintf(&b, "\n*Итого: %s₽*\n", Money(p.Total))
	}
	if p.Discount.IsPositive() {
		fmt.Fprintf(&b, "(С учетом скидки %s₽, промокод %s)\n", Money(p.Discount), format.Escape(p.PromoCode))
	}
	c := p.Contact
	fmt.Fprintf(&b, "\nКлиент: %s\n", format.Escape(c.Name))
	fmt.Fprintf(&b, "Телефон: %s\n", format.Escape(c.Phone))
	fmt.Fprintf(&b, "Адрес: %s\n", format.Escape(c.Address))
	fmt.Fprintf(&b, "Дата: %s\n", format.Escape(c.Date))
	fmt.Fprintf(&b, "Особые пожелания: %s", format.Escape(c.SpecialRequests))
	return b.String()
}

// CustomerMessage formats the Telegram identity of the customer.
func CustomerMessage(c order.Customer) string {
	username := "нет"
	if c.Username != "" {
		username = format.Escape(c.Username)
	}
	lang := c.Language
	if lang == "" {
		lang = "не указан"
	}
	return fmt.Sprintf("👤 *Информация о клиенте:*\nID: %d\nUsername: @%s\nИмя: %s\nЯзык: %s",
		c.ID, username, format.Escape(c.DisplayName()), format.Escape(lang))
}
