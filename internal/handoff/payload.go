// Package handoff carries completed orders to the people and systems that fulfil them.
package handoff

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/pricing"
)

// Payload is an immutable snapshot of a submitted order.
type Payload struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Customer order.Customer
	Category order.Category
	Premises order.Premises

	Lines    []pricing.Line
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	// PromoCode is set only when the code was recognized.
	PromoCode string

	CommercialDetails string
	Contact           order.Contact
}

// New snapshots the order together with its quote.
func New(c order.Customer, o order.Order, q pricing.Quote, now time.Time) Payload {
	p := Payload{
		ID:                uuid.New(),
		CreatedAt:         now,
		Customer:          c,
		Category:          o.Category,
		Premises:          o.Premises,
		Lines:             append([]pricing.Line(nil), q.Lines...),
		Subtotal:          q.Subtotal,
		Discount:          q.Discount,
		Total:             q.Total,
		CommercialDetails: o.CommercialDetails,
		Contact:           o.Contact,
	}
	if q.Promo != nil {
		p.PromoCode = q.Promo.Code
	}
	return p
}

// ShortID is the first block of the order ID, used in customer-facing messages.
func (p Payload) ShortID() string {
	return p.ID.String()[:8]
}

// Individual reports whether the order needs a manual quote.
func (p Payload) Individual() bool {
	for _, l := range p.Lines {
		if l.Informational {
			return true
		}
	}
	return false
}
