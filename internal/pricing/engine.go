package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
)

// Line is one itemized entry of a quote.
type Line struct {
	Code        string
	Description string
	Quantity    decimal.Decimal
	Cost        decimal.Decimal
	// Informational lines carry no cost (commercial requests are quoted by a manager).
	Informational bool
}

// Quote is the engine output. Total already has the discount subtracted.
type Quote struct {
	Lines    []Line
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	// Promo is set only when the order's code was recognized.
	Promo *Promo
}

// Individual reports whether the quote is a placeholder for a manually priced request.
func (q Quote) Individual() bool {
	for _, l := range q.Lines {
		if l.Informational {
			return true
		}
	}
	return false
}

// Engine prices orders against a catalog. It is stateless and safe for concurrent use.
type Engine struct {
	catalog *Catalog
	promos  map[string]Promo
}

// NewEngine builds an engine; with no promos given DefaultPromos is used.
func NewEngine(catalog *Catalog, promos ...Promo) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if len(promos) == 0 {
		promos = DefaultPromos
	}
	idx := make(map[string]Promo, len(promos))
	for _, p := range promos {
		idx[NormalizeCode(p.Code)] = p
	}
	return &Engine{catalog: catalog, promos: idx}
}

// Catalog exposes the read-only price table.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Promo resolves a customer-typed code.
func (e *Engine) Promo(code string) (Promo, bool) {
	p, ok := e.promos[NormalizeCode(code)]
	return p, ok
}

// Quote computes itemized costs for the snapshot. Missing or incomplete answers contribute nothing.
func (e *Engine) Quote(o order.Order) Quote {
	var q quoteBuilder
	e.base(&q, o)
	if o.Category == order.CategoryApartmentOrHouse {
		e.addOns(&q, o)
	}
	e.dryCleaning(&q, o)
	if o.Category != order.CategoryWindows {
		e.windows(&q, o)
	}

	out := Quote{Lines: q.lines, Subtotal: q.sum, Discount: decimal.Zero, Total: q.sum}
	if o.PromoCode != "" {
		if p, ok := e.Promo(o.PromoCode); ok {
			out.Promo = &p
			out.Discount = p.Discount(q.sum)
			out.Total = q.sum.Sub(out.Discount)
		}
	}
	return out
}

func (e *Engine) base(q *quoteBuilder, o order.Order) {
	c := e.catalog
	switch o.Category {
	case order.CategoryApartmentOrHouse:
		if n := deref(o.Rooms); n > 0 {
			q.add("rooms", describeRooms(n), decimal.NewFromInt(int64(n)), c.Room)
		}
		if n := deref(o.Bathrooms); n > 0 {
			q.add("bathrooms", describeBathrooms(n), decimal.NewFromInt(int64(n)), c.Bathroom)
		}
		if o.Kitchen != nil && *o.Kitchen {
			q.add("kitchen", "Уборка кухни", decimal.NewFromInt(1), c.Kitchen)
		}
	case order.CategoryPostRenovation:
		if n := deref(o.PostRenovationArea); n > 0 {
			area := decimal.NewFromInt(int64(n))
			q.add("post_renovation", describeArea("Уборка после ремонта", area), area, c.PostRenovationSqm)
		}
	case order.CategoryWindows:
		e.windows(q, o)
	case order.CategoryCommercial:
		q.info("commercial", "Коммерческое помещение: расчет индивидуальный")
		q.info("commercial.details", "Детали: "+o.CommercialDetails)
	}
}

func (e *Engine) windows(q *quoteBuilder, o order.Order) {
	if o.WindowCount == nil || !o.WindowCount.IsPositive() {
		return
	}
	q.add("windows", describeWindows(*o.WindowCount), *o.WindowCount, e.catalog.WindowLeaf)
}

func (e *Engine) addOns(q *quoteBuilder, o order.Order) {
	for _, rule := range addOnRules {
		if !o.HasAddOn(rule.addOn) {
			continue
		}
		unit, ok := e.catalog.AddOnPrice(rule.addOn)
		if !ok {
			continue
		}
		qty, ok := rule.quantity(o)
		if !ok || !qty.IsPositive() {
			continue
		}
		q.add("addon."+string(rule.addOn), rule.describe(qty), qty, unit)
	}
}

func (e *Engine) dryCleaning(q *quoteBuilder, o order.Order) {
	for _, rule := range dryRules {
		if !o.HasDryItem(rule.item) {
			continue
		}
		qty, unit, desc, ok := rule.price(e.catalog, o)
		if !ok || !qty.IsPositive() {
			continue
		}
		q.add("dry."+string(rule.item), desc, qty, unit)
	}
}

type quoteBuilder struct {
	lines []Line
	sum   decimal.Decimal
}

func (q *quoteBuilder) add(code, desc string, qty, unit decimal.Decimal) {
	cost := qty.Mul(unit)
	if !cost.IsPositive() {
		return
	}
	q.lines = append(q.lines, Line{Code: code, Description: desc, Quantity: qty, Cost: cost})
	q.sum = q.sum.Add(cost)
}

func (q *quoteBuilder) info(code, desc string) {
	q.lines = append(q.lines, Line{Code: code, Description: desc, Informational: true})
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
