package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func apartment(rooms, baths int, kitchen bool) order.Order {
	o := order.New()
	o.SetCategory(order.CategoryApartmentOrHouse, order.PremisesApartment)
	o.Rooms = order.Ptr(rooms)
	o.Bathrooms = order.Ptr(baths)
	o.Kitchen = order.Ptr(kitchen)
	return *o
}

func codes(q Quote) []string {
	out := make([]string, 0, len(q.Lines))
	for _, l := range q.Lines {
		out = append(out, l.Code)
	}
	return out
}

func TestApartmentFormula(t *testing.T) {
	e := NewEngine(nil)
	c := e.Catalog()
	for r := 0; r <= 4; r++ {
		for b := 0; b <= 3; b++ {
			for _, k := range []bool{true, false} {
				q := e.Quote(apartment(r, b, k))
				want := c.Room.Mul(decimal.NewFromInt(int64(r))).Add(c.Bathroom.Mul(decimal.NewFromInt(int64(b))))
				lines := 0
				if r > 0 {
					lines++
				}
				if b > 0 {
					lines++
				}
				if k {
					want = want.Add(c.Kitchen)
					lines++
				}
				if !q.Total.Equal(want) {
					t.Fatalf("r=%d b=%d k=%v: total %s, want %s", r, b, k, q.Total, want)
				}
				if len(q.Lines) != lines {
					t.Fatalf("r=%d b=%d k=%v: %d lines, want %d", r, b, k, len(q.Lines), lines)
				}
			}
		}
	}
}

func TestScenarioA(t *testing.T) {
	q := NewEngine(nil).Quote(apartment(3, 1, true))
	if !q.Total.Equal(dec("7575")) {
		t.Fatalf("total = %s, want 7575", q.Total)
	}
	want := []string{"rooms", "bathrooms", "kitchen"}
	got := codes(q)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line order = %v, want %v", got, want)
		}
	}
}

func TestWindowsFractional(t *testing.T) {
	o := order.New()
	o.SetCategory(order.CategoryWindows, "")
	n := dec("2.5")
	o.WindowCount = &n
	q := NewEngine(nil).Quote(*o)
	if !q.Total.Equal(dec("3625")) {
		t.Fatalf("total = %s, want 3625", q.Total)
	}

	four := dec("4")
	o.WindowCount = &four
	if q := NewEngine(nil).Quote(*o); !q.Total.Equal(dec("5800")) {
		t.Fatalf("total = %s, want 5800", q.Total)
	}
}

func TestSofaTiers(t *testing.T) {
	want := map[order.SofaTier]string{
		order.Sofa2:    "4005",
		order.Sofa3:    "4905",
		order.Sofa4:    "6255",
		order.Sofa5to6: "7155",
		order.Sofa7:    "8325",
	}
	e := NewEngine(nil)
	for _, tier := range order.SofaTiers {
		o := order.New()
		o.SetCategory(order.CategoryDryCleaning, "")
		o.AddDryItem(order.DrySofa)
		o.Sofa = tier
		q := e.Quote(*o)
		if !q.Total.Equal(dec(want[tier])) {
			t.Fatalf("sofa %s: total %s, want %s", tier, q.Total, want[tier])
		}
		if len(q.Lines) != 1 {
			t.Fatalf("sofa %s: %d lines", tier, len(q.Lines))
		}
	}
}

func TestMattressSpecs(t *testing.T) {
	want := map[order.MattressSpec]string{
		order.MattressSingleOneSide:  "2000",
		order.MattressSingleTwoSides: "4000",
		order.MattressDoubleOneSide:  "5500",
		order.MattressDoubleTwoSides: "11000",
	}
	c := DefaultCatalog()
	for _, m := range order.MattressSpecs {
		got, ok := c.MattressPrice(m)
		if !ok || !got.Equal(dec(want[m])) {
			t.Fatalf("mattress %s: %s %v, want %s", m, got, ok, want[m])
		}
	}
}

func TestUnknownTierFailsClosed(t *testing.T) {
	c := DefaultCatalog()
	if p, ok := c.SofaPrice("9"); ok || !p.IsZero() {
		t.Fatalf("unknown sofa tier: %s %v", p, ok)
	}
	if p, ok := c.MattressPrice("3_3"); ok || !p.IsZero() {
		t.Fatalf("unknown mattress spec: %s %v", p, ok)
	}

	o := order.New()
	o.SetCategory(order.CategoryDryCleaning, "")
	o.AddDryItem(order.DrySofa)
	o.Sofa = "9"
	q := NewEngine(c).Quote(*o)
	if len(q.Lines) != 0 || !q.Total.IsZero() {
		t.Fatalf("unknown tier priced: %+v", q)
	}
}

func TestMissingCompanionsSkipped(t *testing.T) {
	o := order.New()
	o.SetCategory(order.CategoryDryCleaning, "")
	for _, d := range order.DryItems {
		o.AddDryItem(d)
	}
	q := NewEngine(nil).Quote(*o)
	if got := codes(q); len(got) != 1 || got[0] != "dry.headboard" {
		t.Fatalf("lines = %v, want only headboard", got)
	}
	if !q.Total.Equal(dec("1600")) {
		t.Fatalf("total = %s", q.Total)
	}
}

func TestAddOnsAndWardrobe(t *testing.T) {
	o := apartment(1, 0, false)
	o.AddAddOn(order.AddOnWardrobe)
	o.AddAddOn(order.AddOnOven)
	e := NewEngine(nil)

	q := e.Quote(o)
	if got := codes(q); len(got) != 2 || got[1] != "addon.oven" {
		t.Fatalf("wardrobe without area should be skipped: %v", got)
	}

	area := dec("3.5")
	o.WardrobeArea = &area
	q = e.Quote(o)
	// 1305 + 960 + 3.5*450
	if !q.Total.Equal(dec("3840")) {
		t.Fatalf("total = %s, want 3840", q.Total)
	}
	if got := codes(q); got[len(got)-1] != "addon.wardrobe" {
		t.Fatalf("line order = %v", got)
	}
}

func TestCrossSellWindowsLast(t *testing.T) {
	o := order.New()
	o.SetCategory(order.CategoryPostRenovation, "")
	o.PostRenovationArea = order.Ptr(40)
	w := dec("2")
	o.WindowCount = &w
	o.AddDryItem(order.DryCarpet)
	o.CarpetArea = order.Ptr(5)

	q := NewEngine(nil).Quote(*o)
	want := []string{"post_renovation", "dry.carpet", "windows"}
	got := codes(q)
	if len(got) != len(want) {
		t.Fatalf("lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lines = %v, want %v", got, want)
		}
	}
	// 40*210 + 5*320 + 2*1450
	if !q.Total.Equal(dec("12900")) {
		t.Fatalf("total = %s, want 12900", q.Total)
	}
}

func TestCommercialIsInformational(t *testing.T) {
	o := order.New()
	o.SetCategory(order.CategoryCommercial, "")
	o.CommercialDetails = "Офис 150 м²"
	q := NewEngine(nil).Quote(*o)
	if !q.Individual() || !q.Total.IsZero() || len(q.Lines) != 2 {
		t.Fatalf("unexpected commercial quote: %+v", q)
	}
}

func TestPromoCodes(t *testing.T) {
	cases := []struct {
		code     string
		discount string
		known    bool
	}{
		{"MARIA", "1136", true},
		{"first", "1136", true},
		{" Mechta ", "757", true},
		{"SUMMER", "0", false},
		{"", "0", false},
	}
	e := NewEngine(nil)
	for _, tc := range cases {
		o := apartment(3, 1, true)
		o.PromoCode = NormalizeCode(tc.code)
		q := e.Quote(o)
		if !q.Subtotal.Equal(dec("7575")) {
			t.Fatalf("%q: subtotal %s", tc.code, q.Subtotal)
		}
		if !q.Discount.Equal(dec(tc.discount)) {
			t.Fatalf("%q: discount %s, want %s", tc.code, q.Discount, tc.discount)
		}
		if !q.Total.Equal(q.Subtotal.Sub(q.Discount)) {
			t.Fatalf("%q: total %s", tc.code, q.Total)
		}
		if (q.Promo != nil) != tc.known {
			t.Fatalf("%q: promo = %v", tc.code, q.Promo)
		}
	}
}

func TestScenarioC(t *testing.T) {
	o := order.New()
	o.SetCategory(order.CategoryDryCleaning, "")
	o.AddDryItem(order.DrySofa)
	o.Sofa = order.Sofa3
	e := NewEngine(nil)
	if q := e.Quote(*o); !q.Total.Equal(dec("4905")) {
		t.Fatalf("total = %s, want 4905", q.Total)
	}
	o.PromoCode = "MECHTA"
	q := e.Quote(*o)
	if !q.Discount.Equal(dec("490")) || !q.Total.Equal(dec("4415")) {
		t.Fatalf("discount %s total %s, want 490/4415", q.Discount, q.Total)
	}
}

func TestDiscountFloor(t *testing.T) {
	p := Promo{Code: "X", Rate: dec("0.15")}
	if d := p.Discount(dec("3625.5")); !d.Equal(dec("543")) {
		t.Fatalf("discount = %s, want 543", d)
	}
	if p.Percent() != "15" {
		t.Fatalf("percent = %s", p.Percent())
	}
}

func TestGenitive(t *testing.T) {
	cases := map[int]string{1: "комнаты", 2: "комнат", 5: "комнат", 11: "комнат", 21: "комнаты"}
	for n, want := range cases {
		if got := genitive(n, "комнаты", "комнат"); got != want {
			t.Fatalf("%d: %s, want %s", n, got, want)
		}
	}
}
