// Package order holds the per-conversation order accumulator.
package order

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Order accumulates the customer's answers. Nil pointers and empty values mean "not answered yet".
type Order struct {
	Category Category
	Premises Premises

	Kitchen   *bool
	Rooms     *int
	Bathrooms *int

	AddOns       []AddOn
	WardrobeArea *decimal.Decimal

	WindowCount *decimal.Decimal

	DryItems   []DryItem
	Sofa       SofaTier
	Mattress   MattressSpec
	CarpetArea *int
	ChairCount *int

	PostRenovationArea *int
	CommercialDetails  string

	PromoCode string

	Contact Contact
}

// New returns an empty order.
func New() *Order {
	return &Order{}
}

// SetCategory records the primary category. It reports false when a category is already set.
func (o *Order) SetCategory(c Category, p Premises) bool {
	if o.Category != CategoryNone {
		return false
	}
	o.Category = c
	if c == CategoryApartmentOrHouse {
		o.Premises = p
	}
	return true
}

// AddAddOn inserts the add-on unless already selected.
func (o *Order) AddAddOn(a AddOn) {
	if !o.HasAddOn(a) {
		o.AddOns = append(o.AddOns, a)
	}
}

// HasAddOn reports whether the add-on is selected.
func (o *Order) HasAddOn(a AddOn) bool {
	return slices.Contains(o.AddOns, a)
}

// ClearAddOns drops every add-on together with the wardrobe area.
func (o *Order) ClearAddOns() {
	o.AddOns = nil
	o.WardrobeArea = nil
}

// AddDryItem inserts the dry-cleaning item unless already selected.
func (o *Order) AddDryItem(d DryItem) {
	if !o.HasDryItem(d) {
		o.DryItems = append(o.DryItems, d)
	}
}

// HasDryItem reports whether the dry-cleaning item is selected.
func (o *Order) HasDryItem(d DryItem) bool {
	return slices.Contains(o.DryItems, d)
}

// ClearDryItems drops every dry-cleaning item and its companion attributes.
func (o *Order) ClearDryItems() {
	o.DryItems = nil
	o.Sofa = ""
	o.Mattress = ""
	o.CarpetArea = nil
	o.ChairCount = nil
}

// HasCompanion reports whether the companion attribute required to price d is present.
// Headboard has no companion.
func (o *Order) HasCompanion(d DryItem) bool {
	switch d {
	case DrySofa:
		return o.Sofa != ""
	case DryMattress:
		return o.Mattress != ""
	case DryCarpet:
		return o.CarpetArea != nil
	case DryChairs:
		return o.ChairCount != nil
	case DryHeadboard:
		return true
	}
	return false
}

// Clone returns a deep copy safe to hand to another goroutine.
func (o *Order) Clone() Order {
	if o == nil {
		return Order{}
	}
	c := *o
	c.Kitchen = clonePtr(o.Kitchen)
	c.Rooms = clonePtr(o.Rooms)
	c.Bathrooms = clonePtr(o.Bathrooms)
	c.AddOns = slices.Clone(o.AddOns)
	c.WardrobeArea = clonePtr(o.WardrobeArea)
	c.WindowCount = clonePtr(o.WindowCount)
	c.DryItems = slices.Clone(o.DryItems)
	c.CarpetArea = clonePtr(o.CarpetArea)
	c.ChairCount = clonePtr(o.ChairCount)
	c.PostRenovationArea = clonePtr(o.PostRenovationArea)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
