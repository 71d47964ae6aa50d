package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	tg "github.com/PetrKevich/bot/core/telegram"
	"github.com/PetrKevich/bot/core/telegram/commands"
	"github.com/PetrKevich/bot/core/telegram/format"
	"github.com/PetrKevich/bot/core/telegram/helpers"
	"github.com/PetrKevich/bot/internal/archive"
	"github.com/PetrKevich/bot/internal/pricing"
)

// OrderLister lists archived orders.
type OrderLister interface {
	Recent(ctx context.Context, limit int) ([]archive.Summary, error)
}

// CommandDeps are the collaborators of the bot commands. Orders may be nil.
type CommandDeps struct {
	Conversation *Conversation
	Catalog      *pricing.Catalog
	Company      Company
	Orders       OrderLister
}

type namedCommand struct {
	name string
	cmd  commands.Command
}

// RegisterCommands adds the bot commands to reg and routes idle free text to the conversation.
func RegisterCommands(reg *tg.Registry, deps CommandDeps) error {
	cv := deps.Conversation
	if cv == nil {
		return fmt.Errorf("bot: nil conversation")
	}
	catalog := deps.Catalog
	if catalog == nil {
		catalog = pricing.DefaultCatalog()
	}

	cmds := []namedCommand{
		{"/start", commands.Command{Handler: cv.Start, Description: "Новый заказ"}},
		{"/cancel", commands.Command{Handler: cv.Cancel, Description: "Отменить заказ"}},
		{"/price", commands.Command{Handler: priceHandler(catalog), Description: "Тарифы"}},
		{"/contacts", commands.Command{Handler: contactsHandler(deps.Company), Description: "Контакты"}},
		{"/sessions", commands.Command{Handler: sessionsHandler(cv), Description: "Активные диалоги", AdminOnly: true}},
	}
	if deps.Orders != nil {
		cmds = append(cmds, namedCommand{"/orders", commands.Command{Handler: ordersHandler(deps.Orders), Description: "Последние заказы", AdminOnly: true}})
	}
	for _, c := range cmds {
		if err := reg.RegisterCommand(c.name, c.cmd); err != nil {
			return err
		}
	}
	reg.SetTextFallback(cv.ManagerHandler)
	return nil
}

// PriceList formats the public tariff.
func PriceList(catalog *pricing.Catalog) string {
	var b strings.Builder
	b.WriteString("💰 *Стандартные тарифы:*\n")
	for _, e := range catalog.PriceList() {
		b.WriteString("\n- " + e.Title + ": " + Money(e.Price) + "₽")
		if e.Unit != "" {
			b.WriteString("/" + e.Unit)
		}
	}
	return b.String()
}

func priceHandler(catalog *pricing.Catalog) tele.HandlerFunc {
	text := PriceList(catalog)
	return func(c tele.Context) error {
		return helpers.SendMD(c, text)
	}
}

func contactsHandler(company Company) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := "📍 *Адрес:* " + format.Escape(company.Address) + "\n☎️ *Телефон:* " + format.Escape(company.Phone)
		return helpers.SendMD(c, text)
	}
}

func sessionsHandler(cv *Conversation) tele.HandlerFunc {
	return func(c tele.Context) error {
		return helpers.SendText(c, fmt.Sprintf("Активных диалогов: %d", cv.svc.Active()))
	}
}

func ordersHandler(orders OrderLister) tele.HandlerFunc {
	return func(c tele.Context) error {
		list, err := orders.Recent(helpers.BuildContext(c), 10)
		if err != nil {
			return err
		}
		return helpers.SendMD(c, RecentOrders(list))
	}
}

// RecentOrders formats the admin listing of archived orders.
func RecentOrders(list []archive.Summary) string {
	if len(list) == 0 {
		return "Заказов пока нет."
	}
	var b strings.Builder
	b.WriteString("🗂 *Последние заказы:*\n")
	for _, s := range list {
		fmt.Fprintf(&b, "\n`%s` %s · %s · %s₽",
			s.ID.String()[:8], s.CreatedAt.Format("02.01 15:04"), format.Escape(s.Category), Money(s.Total))
		if s.Username != "" {
			b.WriteString(" · @" + format.Escape(s.Username))
		}
		if s.Phone != "" {
			b.WriteString(" · " + format.Escape(s.Phone))
		}
	}
	return b.String()
}
