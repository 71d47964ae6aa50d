// Package pricing turns an order snapshot into an itemized quote.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
)

// Catalog is the static price table, in roubles. It must not be mutated after construction.
type Catalog struct {
	Room     decimal.Decimal
	Bathroom decimal.Decimal
	Kitchen  decimal.Decimal

	// AddOns holds flat add-on prices; the wardrobe entry is per m².
	AddOns map[order.AddOn]decimal.Decimal

	WindowLeaf        decimal.Decimal
	PostRenovationSqm decimal.Decimal
	// CommercialSqm is a reference rate shown to the customer; commercial orders are quoted by hand.
	CommercialSqm decimal.Decimal

	Sofa      map[order.SofaTier]decimal.Decimal
	Mattress  map[order.MattressSpec]decimal.Decimal
	Chair     decimal.Decimal
	Headboard decimal.Decimal
	CarpetSqm decimal.Decimal
}

// DefaultCatalog returns the current tariff.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Room:     rub(1305),
		Bathroom: rub(1760),
		Kitchen:  rub(1900),
		AddOns: map[order.AddOn]decimal.Decimal{
			order.AddOnOven:      rub(960),
			order.AddOnHood:      rub(896),
			order.AddOnMicrowave: rub(512),
			order.AddOnDishes:    rub(640),
			order.AddOnFridge:    rub(960),
			order.AddOnCabinets:  rub(1660),
			order.AddOnIroning:   rub(1530),
			order.AddOnBalcony:   rub(960),
			order.AddOnLitterBox: rub(256),
			order.AddOnWardrobe:  rub(450),
		},
		WindowLeaf:        rub(1450),
		PostRenovationSqm: rub(210),
		CommercialSqm:     rub(70),
		Sofa: map[order.SofaTier]decimal.Decimal{
			order.Sofa2:    rub(4005),
			order.Sofa3:    rub(4905),
			order.Sofa4:    rub(6255),
			order.Sofa5to6: rub(7155),
			order.Sofa7:    rub(8325),
		},
		Mattress: map[order.MattressSpec]decimal.Decimal{
			order.MattressSingleOneSide:  rub(2000),
			order.MattressSingleTwoSides: rub(4000),
			order.MattressDoubleOneSide:  rub(5500),
			order.MattressDoubleTwoSides: rub(11000),
		},
		Chair:     rub(450),
		Headboard: rub(1600),
		CarpetSqm: rub(320),
	}
}

// AddOnPrice returns the add-on price. Unknown add-ons report false.
func (c *Catalog) AddOnPrice(a order.AddOn) (decimal.Decimal, bool) {
	return lookup(c.AddOns, a)
}

// SofaPrice returns the price for a sofa tier. Unknown tiers report false.
func (c *Catalog) SofaPrice(t order.SofaTier) (decimal.Decimal, bool) {
	return lookup(c.Sofa, t)
}

// MattressPrice returns the price for a mattress spec. Unknown specs report false.
func (c *Catalog) MattressPrice(m order.MattressSpec) (decimal.Decimal, bool) {
	return lookup(c.Mattress, m)
}

func lookup[K comparable](table map[K]decimal.Decimal, key K) (decimal.Decimal, bool) {
	v, ok := table[key]
	if !ok || !v.IsPositive() {
		return decimal.Zero, false
	}
	return v, true
}

func rub(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// PriceEntry is one row of the public tariff.
type PriceEntry struct {
	Title string
	Price decimal.Decimal
	Unit  string
}

// PriceList returns the tariff rows shown by the price command.
func (c *Catalog) PriceList() []PriceEntry {
	out := []PriceEntry{
		{Title: "Комната", Price: c.Room},
		{Title: "Санузел", Price: c.Bathroom},
		{Title: "Кухня", Price: c.Kitchen},
		{Title: "Мытье окон", Price: c.WindowLeaf, Unit: "створка"},
		{Title: "Уборка после ремонта", Price: c.PostRenovationSqm, Unit: "м²"},
		{Title: "Коммерческое помещение", Price: c.CommercialSqm, Unit: "м²"},
	}
	for _, rule := range addOnRules {
		unit := ""
		switch rule.addOn {
		case order.AddOnWardrobe:
			unit = "м²"
		case order.AddOnIroning:
			unit = "час"
		}
		if p, ok := c.AddOnPrice(rule.addOn); ok {
			out = append(out, PriceEntry{Title: rule.title, Price: p, Unit: unit})
		}
	}
	for _, t := range order.SofaTiers {
		if p, ok := c.SofaPrice(t); ok {
			out = append(out, PriceEntry{Title: "Диван " + string(t) + "-местный", Price: p})
		}
	}
	for _, m := range order.MattressSpecs {
		if p, ok := c.MattressPrice(m); ok {
			out = append(out, PriceEntry{Title: "Матрас " + MattressTitle(m), Price: p})
		}
	}
	return append(out,
		PriceEntry{Title: "Ковер", Price: c.CarpetSqm, Unit: "м²"},
		PriceEntry{Title: "Стул/кресло", Price: c.Chair, Unit: "шт."},
		PriceEntry{Title: "Изголовье кровати", Price: c.Headboard},
	)
}
