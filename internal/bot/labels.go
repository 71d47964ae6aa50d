// Package bot is the Telegram side of the ordering conversation: it maps button
// labels to dialog inputs, renders prompts and forwards completed orders to managers.
package bot

import (
	"strings"

	"github.com/PetrKevich/bot/internal/dialog"
	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/pricing"
)

// Fixed button labels.
const (
	LabelApartment      = "🧺 Уборка квартиры"
	LabelHouse          = "🏡 Уборка дома"
	LabelPostRenovation = "🔧 После ремонта"
	LabelWindows        = "🪟 Мытье окон"
	LabelDryCleaning    = "🛋️ Химчистка"
	LabelCommercial     = "👔 Коммерческое помещение"

	LabelYes          = "Да"
	LabelNo           = "Нет"
	LabelDone         = "Готово"
	LabelNoAddOns     = "❌ Нет, только основная уборка"
	LabelNoDryItems   = "❌Нет, не нужно"
	LabelHowToCount   = "Как считать окна?"
	LabelCheckout     = "🎉Начать оформление"
	LabelCancelOrder  = "❌Отменить заказ"
	LabelEditContacts = "Нет, хочу изменить"
	LabelStart        = "/start"
)

var addOnLabelFormats = map[order.AddOn]string{
	order.AddOnOven:      "🧽Помыть духовку (+%s₽)",
	order.AddOnHood:      "🫧Помыть вытяжку (+%s₽)",
	order.AddOnMicrowave: "✨Микроволновка (+%s₽)",
	order.AddOnDishes:    "🍽️Помыть посуду (+%s₽)",
	order.AddOnFridge:    "❄️Холодильник (+%s₽)",
	order.AddOnCabinets:  "🗄️Внутри кух.шкафов (+%s₽)",
	order.AddOnIroning:   "👚Погладить одежду (+%s₽/час)",
	order.AddOnBalcony:   "🪣Убраться на балконе (+%s₽)",
	order.AddOnLitterBox: "🐾Лоток животных (+%s₽)",
	order.AddOnWardrobe:  "🧥Гардеробная (+%s₽/м2)",
}

var dryItemLabels = map[order.DryItem]string{
	order.DrySofa:      "Диван🛋️",
	order.DryMattress:  "Матрас",
	order.DryCarpet:    "Ковер",
	order.DryChairs:    "Стулья/кресла 🪑",
	order.DryHeadboard: "Изголовье кровати",
}

var sofaLabels = map[order.SofaTier]string{
	order.Sofa2:    "2х местный",
	order.Sofa3:    "3х местный",
	order.Sofa4:    "4х местный",
	order.Sofa5to6: "5-6 местный",
	order.Sofa7:    "7 местный",
}

var mattressLabels = map[order.MattressSpec]string{
	order.MattressSingleOneSide:  "1 местный/ помыть с одной стороны",
	order.MattressSingleTwoSides: "1 местный/ помыть с 2 сторон",
	order.MattressDoubleOneSide:  "2 местный/ помыть с 1 стороны",
	order.MattressDoubleTwoSides: "2 местный/ помыть с 2 сторон",
}

// Classifier turns message text into dialog input. Add-on labels show catalog
// prices, so the table is built per catalog.
type Classifier struct {
	table        map[string]dialog.Input
	addOnLabels  []string
	dryLabels    []string
	sofaLabels   []string
	mattressLbls []string
}

// NewClassifier builds the label table for catalog; nil means the default tariff.
func NewClassifier(catalog *pricing.Catalog) *Classifier {
	if catalog == nil {
		catalog = pricing.DefaultCatalog()
	}
	cl := &Classifier{table: map[string]dialog.Input{
		LabelApartment:      {Kind: dialog.KindCategory, Category: order.CategoryApartmentOrHouse, Premises: order.PremisesApartment},
		LabelHouse:          {Kind: dialog.KindCategory, Category: order.CategoryApartmentOrHouse, Premises: order.PremisesHouse},
		LabelPostRenovation: {Kind: dialog.KindCategory, Category: order.CategoryPostRenovation},
		LabelWindows:        {Kind: dialog.KindCategory, Category: order.CategoryWindows},
		LabelDryCleaning:    {Kind: dialog.KindCategory, Category: order.CategoryDryCleaning},
		LabelCommercial:     {Kind: dialog.KindCategory, Category: order.CategoryCommercial},
		LabelYes:            {Kind: dialog.KindYes},
		LabelNo:             {Kind: dialog.KindNo},
		LabelDone:           {Kind: dialog.KindDone},
		LabelNoAddOns:       {Kind: dialog.KindNone},
		LabelNoDryItems:     {Kind: dialog.KindNone},
		LabelHowToCount:     {Kind: dialog.KindHowToCount},
		LabelCheckout:       {Kind: dialog.KindStartCheckout},
		LabelCancelOrder:    {Kind: dialog.KindCancelOrder},
		LabelEditContacts:   {Kind: dialog.KindEdit},
	}}

	for _, a := range order.AddOns {
		price, ok := catalog.AddOnPrice(a)
		if !ok {
			continue
		}
		label := addOnLabel(a, price.String())
		cl.table[label] = dialog.Input{Kind: dialog.KindAddOn, AddOn: a}
		cl.addOnLabels = append(cl.addOnLabels, label)
	}
	for _, d := range order.DryItems {
		cl.table[dryItemLabels[d]] = dialog.Input{Kind: dialog.KindDryItem, DryItem: d}
		cl.dryLabels = append(cl.dryLabels, dryItemLabels[d])
	}
	for _, t := range order.SofaTiers {
		cl.table[sofaLabels[t]] = dialog.Input{Kind: dialog.KindSofa, Sofa: t}
		cl.sofaLabels = append(cl.sofaLabels, sofaLabels[t])
	}
	for _, m := range order.MattressSpecs {
		cl.table[mattressLabels[m]] = dialog.Input{Kind: dialog.KindMattress, Mattress: m}
		cl.mattressLbls = append(cl.mattressLbls, mattressLabels[m])
	}
	return cl
}

func addOnLabel(a order.AddOn, price string) string {
	return strings.Replace(addOnLabelFormats[a], "%s", price, 1)
}

// Classify maps a button label to its input; anything else is free text.
// The raw text is always kept on the result.
func (cl *Classifier) Classify(text string) dialog.Input {
	if in, ok := cl.table[strings.TrimSpace(text)]; ok {
		in.Text = text
		return in
	}
	return dialog.Text(text)
}
