package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
)

type addOnRule struct {
	addOn    order.AddOn
	title    string
	quantity func(o order.Order) (decimal.Decimal, bool)
	describe func(qty decimal.Decimal) string
}

func flatAddOn(a order.AddOn, title string) addOnRule {
	return addOnRule{
		addOn:    a,
		title:    title,
		quantity: func(order.Order) (decimal.Decimal, bool) { return decimal.NewFromInt(1), true },
		describe: func(decimal.Decimal) string { return title },
	}
}

func wardrobeAddOn(title string) addOnRule {
	return addOnRule{
		addOn: order.AddOnWardrobe,
		title: title,
		quantity: func(o order.Order) (decimal.Decimal, bool) {
			if o.WardrobeArea == nil {
				return decimal.Zero, false
			}
			return *o.WardrobeArea, true
		},
		describe: func(area decimal.Decimal) string { return describeArea(title, area) },
	}
}

// addOnRules is evaluated in order; the table order fixes the line order.
var addOnRules = []addOnRule{
	flatAddOn(order.AddOnOven, "Мытье духовки"),
	flatAddOn(order.AddOnHood, "Мытье вытяжки"),
	flatAddOn(order.AddOnMicrowave, "Мытье микроволновки"),
	flatAddOn(order.AddOnDishes, "Мытье посуды"),
	flatAddOn(order.AddOnFridge, "Мытье холодильника"),
	flatAddOn(order.AddOnCabinets, "Мытье кухонных шкафов"),
	flatAddOn(order.AddOnIroning, "Глажка одежды"),
	flatAddOn(order.AddOnBalcony, "Уборка балкона"),
	flatAddOn(order.AddOnLitterBox, "Уборка лотка животных"),
	wardrobeAddOn("Уборка гардеробной"),
}

// dryRule resolves one dry-cleaning item from its companion attribute.
type dryRule struct {
	item  order.DryItem
	price func(c *Catalog, o order.Order) (qty, unit decimal.Decimal, desc string, ok bool)
}

var one = decimal.NewFromInt(1)

var dryRules = []dryRule{
	{
		item: order.DrySofa,
		price: func(c *Catalog, o order.Order) (decimal.Decimal, decimal.Decimal, string, bool) {
			unit, ok := c.SofaPrice(o.Sofa)
			return one, unit, fmt.Sprintf("Химчистка %s-местного дивана", o.Sofa), ok
		},
	},
	{
		item: order.DryMattress,
		price: func(c *Catalog, o order.Order) (decimal.Decimal, decimal.Decimal, string, bool) {
			unit, ok := c.MattressPrice(o.Mattress)
			return one, unit, "Химчистка матраса (" + MattressTitle(o.Mattress) + ")", ok
		},
	},
	{
		item: order.DryCarpet,
		price: func(c *Catalog, o order.Order) (decimal.Decimal, decimal.Decimal, string, bool) {
			if o.CarpetArea == nil {
				return decimal.Zero, decimal.Zero, "", false
			}
			area := decimal.NewFromInt(int64(*o.CarpetArea))
			return area, c.CarpetSqm, describeArea("Химчистка ковра", area), true
		},
	},
	{
		item: order.DryChairs,
		price: func(c *Catalog, o order.Order) (decimal.Decimal, decimal.Decimal, string, bool) {
			if o.ChairCount == nil {
				return decimal.Zero, decimal.Zero, "", false
			}
			n := *o.ChairCount
			return decimal.NewFromInt(int64(n)), c.Chair, fmt.Sprintf("Химчистка стульев/кресел: %d шт.", n), true
		},
	},
	{
		item: order.DryHeadboard,
		price: func(c *Catalog, _ order.Order) (decimal.Decimal, decimal.Decimal, string, bool) {
			return one, c.Headboard, "Химчистка изголовья кровати", c.Headboard.IsPositive()
		},
	},
}

// MattressTitle is the human label of a mattress spec.
func MattressTitle(m order.MattressSpec) string {
	switch m {
	case order.MattressSingleOneSide:
		return "1-местный, с одной стороны"
	case order.MattressSingleTwoSides:
		return "1-местный, с двух сторон"
	case order.MattressDoubleOneSide:
		return "2-местный, с одной стороны"
	case order.MattressDoubleTwoSides:
		return "2-местный, с двух сторон"
	}
	return string(m)
}

func describeRooms(n int) string {
	return fmt.Sprintf("Уборка %d %s", n, genitive(n, "комнаты", "комнат"))
}

func describeBathrooms(n int) string {
	return fmt.Sprintf("Уборка %d %s", n, genitive(n, "санузла", "санузлов"))
}

func describeWindows(n decimal.Decimal) string {
	return "Мытье окон (" + n.String() + " ств.)"
}

func describeArea(title string, area decimal.Decimal) string {
	return title + " (" + area.String() + " м²)"
}

// genitive picks the Russian genitive form after a cardinal: 1, 21, 31 take the singular.
func genitive(n int, singular, plural string) string {
	if n%10 == 1 && n%100 != 11 {
		return singular
	}
	return plural
}
