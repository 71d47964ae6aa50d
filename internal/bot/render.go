package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/PetrKevich/bot/core/telegram/format"
	"github.com/PetrKevich/bot/core/telegram/keyboard"
	"github.com/PetrKevich/bot/internal/dialog"
	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/pricing"
)

// Company holds the contacts shown to customers.
type Company struct {
	Address string
	Phone   string
}

// Message is one outbound Telegram message. Photos, when set, are sent as an album and Text is ignored.
type Message struct {
	Text     string
	Markdown bool
	Markup   *tele.ReplyMarkup
	Photos   []string
}

// Renderer turns dialog prompts into messages.
type Renderer struct {
	catalog    *pricing.Catalog
	labels     *Classifier
	company    Company
	windowPics []string
}

// NewRenderer builds a renderer; labels must come from the same catalog.
func NewRenderer(catalog *pricing.Catalog, labels *Classifier, company Company, windowPics []string) *Renderer {
	if catalog == nil {
		catalog = pricing.DefaultCatalog()
	}
	if labels == nil {
		labels = NewClassifier(catalog)
	}
	return &Renderer{catalog: catalog, labels: labels, company: company, windowPics: windowPics}
}

const phoneRequest = "Чтобы уточнить детали и подтвердить заказ, оставьте\n📱 *Ваш телефон*"

var staticPrompts = map[dialog.Prompt]string{
	dialog.PromptKitchen:            "Будем мыть кухню?",
	dialog.PromptRooms:              "*Укажите количество комнат (только комнаты. Без кухни и санузлов.)*",
	dialog.PromptBathrooms:          "*Укажите количество санузлов (1 ванная + 1 туалет = 1 санузел)*",
	dialog.PromptAddOns:             "*Нужны ли дополнительные услуги?*\nНажмите на все нужные варианты 😊",
	dialog.PromptWardrobeArea:       "Сколько м² ваша гардеробная? Введите число (например: 3.5):",
	dialog.PromptWindowsOffer:       "*Помыть вам окна?* 🪟",
	dialog.PromptWindowsIntro:       "Чтобы окна сияли, нам нужно знать их количество 😊",
	dialog.PromptWindowsGuide:       "🪟 Мы считаем окна створками. Они могут различаться по размеру, *главное — их количество*",
	dialog.PromptWindowCount:        "*Сколько у вас окон?* 😊\n(можно дробное число, например 2.5 -> через точку)",
	dialog.PromptDryCleaningOffer:   "*Хотите заказать химчистку мебели и ковров одновременно с уборкой?* 🛋️",
	dialog.PromptDryCleaningItems:   "👉*Выберите тип химчистки*\nМожете выбрать несколько",
	dialog.PromptSofaSize:           "*Укажите количество мест на диване:*",
	dialog.PromptMattressSize:       "*Укажите размер матраса🛏️:*",
	dialog.PromptCarpetArea:         "Сколько м2 ваш ковёр?\n(напишите цифру в сообщении)",
	dialog.PromptChairCount:         "*В сообщении напишите общее количество кресел/ стульев*",
	dialog.PromptPostRenovationArea: "В сообщении напишите площадь помещения (например, 42)",
	dialog.PromptCommercialReceived: "Спасибо за информацию!",
	dialog.PromptOrderCancelled:     "Жаль, что вы отменили заказ.😔😢\n\nНо мы будем рады помочь вам в другой раз!\n\nЕсли передумаете, просто нажмите /start 🧹💛",
	dialog.PromptPromoChoice:        "У вас есть промокод на скидку? 🫰",
	dialog.PromptPromoCode:          "Напишите промокод в сообщении 💫",
	dialog.PromptPromoUnknown:       "Такого промокода нет, но вы все равно молодец! 😊",
	dialog.PromptPhone:              phoneRequest,
	dialog.PromptAddress:            "🏢 *Адрес уборки* (город/улица/дом)\n❗️в ОДНОМ сообщении",
	dialog.PromptDate:               "🗓 *Желаемая дата и время уборки*\n❗️в ОДНОМ сообщении",
	dialog.PromptName:               "👥Напишите своё имя",
	dialog.PromptEditContact:        "Давайте начнем заново.",
	dialog.PromptSpecialRequests:    "🙏Напишите есть ли моменты или места, которые требуют отдельного внимания?\n❗️в ОДНОМ сообщении",
	dialog.PromptAnotherOrder:       "Хотите сделать еще один заказ?",
	dialog.PromptCancelled:          "Заказ отменён. 😢\nХотите начать новый заказ?",
	dialog.PromptFallback:           "Не понимаю команду. 😕\n\nВведите /start для нового заказа или /cancel для отмены.",
	dialog.PromptInvalidNumber:      "Пожалуйста, введите число.",
	dialog.PromptInvalidDecimal:     "❌ Пожалуйста, введите корректное число (например: 2 или 3.5):",
	dialog.PromptUseButtons:         "Пожалуйста, используйте кнопки для ответа:",
	dialog.PromptEmptyText:          "Пожалуйста, напишите ответ текстом в одном сообщении.",
}

// Render produces the messages for every prompt of the reply, in order.
func (r *Renderer) Render(reply dialog.Reply) []Message {
	out := make([]Message, 0, len(reply.Prompts))
	for _, p := range reply.Prompts {
		if m, ok := r.prompt(p, reply); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r *Renderer) prompt(p dialog.Prompt, reply dialog.Reply) (Message, bool) {
	m := Message{Text: staticPrompts[p], Markdown: true, Markup: keyboard.RemoveKeyboard()}
	switch p {
	case dialog.PromptWelcome:
		m.Text = "Привет! 👋 Я бот «Клиноголик» — помогу рассчитать стоимость уборки за 1 минуту!\n\n👉 *Выберите тип уборки:*"
		m.Markup = categoryKeyboard()
	case dialog.PromptCategory:
		m.Text = "👉 *Выберите тип уборки:*"
		m.Markup = categoryKeyboard()
	case dialog.PromptKitchen, dialog.PromptWindowsOffer, dialog.PromptDryCleaningOffer:
		m.Markup = yesNoKeyboard()
	case dialog.PromptPromoChoice:
		m.Markup = keyboard.ReplyButtons([][]string{{LabelYes, LabelNo}}, keyboard.OneTime(), keyboard.Placeholder("Выберите вариант ниже ⬇️"))
	case dialog.PromptBathrooms:
		m.Markup = keyboard.ReplyButtons([][]string{{"1", "2", "3"}, {"4", "5", "6"}}, keyboard.OneTime())
	case dialog.PromptAddOns:
		rows := keyboard.Chunk(r.labels.addOnLabels, 2)
		m.Markup = keyboard.ReplyButtons(append(rows, []string{LabelNoAddOns, LabelDone}))
	case dialog.PromptWindowsIntro:
		m.Markdown = false
		m.Markup = keyboard.ReplyButtons([][]string{{LabelHowToCount}}, keyboard.OneTime())
	case dialog.PromptWindowExamples:
		if len(r.windowPics) == 0 {
			return Message{}, false
		}
		return Message{Photos: r.windowPics}, true
	case dialog.PromptDryCleaningItems:
		rows := keyboard.Chunk(r.labels.dryLabels, 2)
		m.Markup = keyboard.ReplyButtons(append(rows, []string{LabelNoDryItems}, []string{LabelDone}))
	case dialog.PromptSofaSize:
		m.Markup = keyboard.ReplyButtons(keyboard.Chunk(r.labels.sofaLabels, 1), keyboard.OneTime())
	case dialog.PromptMattressSize:
		m.Markup = keyboard.ReplyButtons(keyboard.Chunk(r.labels.mattressLbls, 1), keyboard.OneTime())
	case dialog.PromptCommercialDetails:
		m.Text = r.commercialRequest()
	case dialog.PromptCommercialReceived:
		m.Markup = nil
	case dialog.PromptSummary:
		m.Text = r.summary(reply)
		m.Markup = keyboard.ReplyButtons([][]string{{LabelCheckout, LabelCancelOrder}}, keyboard.OneTime())
	case dialog.PromptSummaryFinal:
		m.Text = r.summary(reply)
	case dialog.PromptPromoApplied:
		m.Text = r.promoApplied(reply)
	case dialog.PromptConfirm:
		m.Text = confirmText(reply.Order.Contact)
		m.Markdown = false
		m.Markup = keyboard.ReplyButtons([][]string{{LabelYes, LabelEditContacts}}, keyboard.OneTime())
	case dialog.PromptThanks:
		m.Text = r.thanks()
		m.Markup = nil
	case dialog.PromptAnotherOrder:
		m.Markdown = false
		m.Markup = keyboard.ReplyButtons([][]string{{LabelStart}}, keyboard.OneTime())
	case dialog.PromptCancelled:
		m.Markdown = false
		m.Markup = keyboard.ReplyButtons([][]string{{LabelStart}})
	case dialog.PromptFallback, dialog.PromptUseButtons, dialog.PromptInvalidNumber,
		dialog.PromptInvalidDecimal, dialog.PromptEmptyText, dialog.PromptEditContact:
		// Hints are followed by the state question, which carries the keyboard.
		m.Markdown = false
		if p != dialog.PromptFallback {
			m.Markup = nil
		}
	}
	if m.Text == "" {
		return Message{}, false
	}
	return m, true
}

func yesNoKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([][]string{{LabelYes, LabelNo}}, keyboard.OneTime())
}

func categoryKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([][]string{
		{LabelApartment, LabelHouse},
		{LabelPostRenovation, LabelWindows},
		{LabelDryCleaning, LabelCommercial},
	}, keyboard.OneTime())
}

func (r *Renderer) commercialRequest() string {
	return "Спасибо за ваш запрос! 💙\n\n" +
		"Стоимость уборки коммерческого помещения рассчитывается индивидуально: учитываем площадь, тип уборки и особенности объекта.\n\n" +
		"Примерные цены: от " + Money(r.catalog.CommercialSqm) + " руб/м² (за базовую уборку), если хотите ориентир😊\n\n" +
		"📋 Чтобы мы могли подготовить для вас точное коммерческое предложение, пожалуйста, укажите:\n\n" +
		"1. *Тип помещения* (офис, магазин, салон, склад и т.д.)\n" +
		"2. *Площадь* (м²)\n" +
		"3. *Какие виды уборки нужны* (ежедневная, генеральная, после ремонта, химчистка и пр.)\n" +
		"4. *Особые задачи* (например, мытьё витрин, чистка ковров, уборка санузлов)\n\n" +
		"❗️отправьте информацию ОДНИМ сообщением\n\n" +
		"💼 *Пример:*\n" +
		"«Офис 150 м², нужна ежедневная уборка (пылесос, протирка поверхностей, санузлы) + мытьё окон 1 раз в месяц»"
}

func (r *Renderer) summary(reply dialog.Reply) string {
	var b strings.Builder
	b.WriteString("*Отлично! 💡 Предварительная стоимость:*\n\n")
	lines := QuoteLines(reply.Quote)
	if len(lines) == 0 {
		b.WriteString("Базовый тариф")
	} else {
		b.WriteString(strings.Join(lines, "\n"))
	}
	total := decimal.Zero
	if reply.Quote != nil {
		if reply.Quote.Individual() {
			b.WriteString("\n\n*Итого: по запросу*")
			return b.String()
		}
		total = reply.Quote.Total
	}
	fmt.Fprintf(&b, "\n\n*Итого: %s₽*", Money(total))
	return b.String()
}

// QuoteLines formats quote lines for Markdown messages; user text is escaped.
func QuoteLines(q *pricing.Quote) []string {
	if q == nil {
		return nil
	}
	out := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		if l.Informational {
			out = append(out, format.Escape(l.Description))
			continue
		}
		out = append(out, format.Escape(l.Description)+": "+Money(l.Cost)+"₽")
	}
	return out
}

var promoGreetings = map[string]string{
	"MARIA":  "Ура!🎉 Вот вам скидка %s%% лично от Марии",
	"FIRST":  "Нам очень приятно с вами познакомиться! 😊\nВ честь первой встречи дарим вам скидку %s%%",
	"MECHTA": "Мечты сбываются! ✨\nВаша скидка по промокоду %s%%",
}

func (r *Renderer) promoApplied(reply dialog.Reply) string {
	if reply.Promo == nil || reply.Quote == nil {
		return ""
	}
	greeting, ok := promoGreetings[pricing.NormalizeCode(reply.Promo.Code)]
	if !ok {
		greeting = "Промокод принят! Ваша скидка %s%%"
	}
	return fmt.Sprintf(greeting, reply.Promo.Percent()) +
		"\nТеперь стоимость уборки: *" + Money(reply.Quote.Total) + "₽*"
}

func confirmText(c order.Contact) string {
	return "Проверьте правильно ли введены данные?😊\n\n" +
		"☎️Номер: " + c.Phone + "\n" +
		"📍Адрес: " + c.Address + "\n" +
		"🗓️Дата: " + c.Date + "\n" +
		"👥Имя: " + c.Name
}

func (r *Renderer) thanks() string {
	text := "*Спасибо! 🎉 Наш менеджер свяжется с вами в течение 15 минут для подтверждения.*"
	if contacts := r.company.lines(); contacts != "" {
		text += "\n\n" + contacts
	}
	return text
}

func (c Company) lines() string {
	var parts []string
	if c.Address != "" {
		parts = append(parts, "📍"+format.Escape(c.Address))
	}
	if c.Phone != "" {
		parts = append(parts, "☎️ "+format.Escape(c.Phone))
	}
	return strings.Join(parts, "\n")
}

// Money renders whole roubles without decimals and anything else with two places.
func Money(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.StringFixed(2)
}
