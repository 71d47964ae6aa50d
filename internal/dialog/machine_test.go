package dialog

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PetrKevich/bot/internal/order"
)

func yes() Input { return Input{Kind: KindYes, Text: "Да"} }
func no() Input { return Input{Kind: KindNo, Text: "Нет"} }
func done() Input { return Input{Kind: KindDone, Text: "Готово"} }
func none() Input { return Input{Kind: KindNone} }

func category(c order.Category, p order.Premises) Input {
	return Input{Kind: KindCategory, Category: c, Premises: p}
}

func addOn(a order.AddOn) Input { return Input{Kind: KindAddOn, AddOn: a} }
func dryItem(d order.DryItem) Input { return Input{Kind: KindDryItem, DryItem: d} }
func sofa(t order.SofaTier) Input { return Input{Kind: KindSofa, Sofa: t} }
func mattress(m order.MattressSpec) Input { return Input{Kind: KindMattress, Mattress: m} }

type walk struct {
	t     *testing.T
	m     *Machine
	state State
	order *order.Order
	last  Reply
}

func newWalk(t *testing.T) *walk {
	return &walk{t: t, m: NewMachine(nil), state: StateCategory, order: order.New()}
}

func (w *walk) send(in Input, want State) Reply {
	w.t.Helper()
	next, r := w.m.Transition(w.state, w.order, in)
	if next != want {
		w.t.Fatalf("from %s on %s: got %s, want %s (prompts %v)", w.state, in.Kind, next, want, r.Prompts)
	}
	w.state = next
	w.last = r
	return r
}

func TestScenarioApartment(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryApartmentOrHouse, order.PremisesApartment), StateKitchen)
	w.send(yes(), StateRooms)
	w.send(Text("3"), StateBathrooms)
	w.send(Text("1"), StateAddOns)
	w.send(none(), StateWindowsOffer)
	w.send(no(), StateDryCleaningOffer)
	r := w.send(no(), StateSummary)

	if r.Quote == nil || !r.Quote.Total.Equal(decimal.NewFromInt(7575)) {
		t.Fatalf("quote = %+v, want 7575", r.Quote)
	}
	if !reflect.DeepEqual(r.Prompts, []Prompt{PromptSummary}) {
		t.Fatalf("prompts = %v", r.Prompts)
	}

	w.send(Input{Kind: KindStartCheckout}, StatePromoChoice)
	w.send(no(), StatePhone)
	w.send(Text("+7 999 000-00-00"), StateAddress)
	w.send(Text("Пески, 1"), StateDate)
	w.send(Text("завтра в 10"), StateName)
	w.send(Text("Анна"), StateConfirm)
	w.send(yes(), StateSpecialRequests)
	r = w.send(Text("нет"), StateIdle)
	if !r.Submitted {
		t.Fatalf("order not submitted")
	}
	if r.Order.Contact.Name != "Анна" || r.Order.Contact.SpecialRequests != "нет" {
		t.Fatalf("contact = %+v", r.Order.Contact)
	}
}

func TestScenarioWindowsSkipsPromo(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryWindows, ""), StateWindowsGuide)
	r := w.send(Input{Kind: KindHowToCount}, StateWindowCount)
	want := []Prompt{PromptWindowsGuide, PromptWindowExamples, PromptWindowCount}
	if !reflect.DeepEqual(r.Prompts, want) {
		t.Fatalf("prompts = %v, want %v", r.Prompts, want)
	}
	r = w.send(Text("4"), StatePhone)
	if !reflect.DeepEqual(r.Prompts, []Prompt{PromptSummaryFinal, PromptPhone}) {
		t.Fatalf("prompts = %v", r.Prompts)
	}
	if r.Quote == nil || !r.Quote.Total.Equal(decimal.NewFromInt(5800)) {
		t.Fatalf("quote = %+v, want 5800", r.Quote)
	}
}

func TestScenarioDryCleaningWithPromo(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryDryCleaning, ""), StateDryCleaningItems)
	w.send(dryItem(order.DrySofa), StateDryCleaningItems)
	w.send(done(), StateSofaSize)
	r := w.send(sofa(order.Sofa3), StateSummary)
	if !r.Quote.Total.Equal(decimal.NewFromInt(4905)) {
		t.Fatalf("total = %s", r.Quote.Total)
	}
	w.send(Input{Kind: KindStartCheckout}, StatePromoChoice)
	w.send(yes(), StatePromoCodeEntry)
	r = w.send(Text("mechta"), StatePhone)
	if r.Promo == nil || r.Promo.Code != "MECHTA" {
		t.Fatalf("promo = %+v", r.Promo)
	}
	if !r.Quote.Total.Equal(decimal.NewFromInt(4415)) || !r.Quote.Discount.Equal(decimal.NewFromInt(490)) {
		t.Fatalf("quote = %s - %s", r.Quote.Total, r.Quote.Discount)
	}
	if w.order.PromoCode != "MECHTA" {
		t.Fatalf("promo code = %q", w.order.PromoCode)
	}
}

func TestUnknownPromoIsAcknowledged(t *testing.T) {
	w := newWalk(t)
	w.state = StatePromoCodeEntry
	w.order.SetCategory(order.CategoryPostRenovation, "")
	r := w.send(Text("SUMMER"), StatePhone)
	if r.Promo != nil || w.order.PromoCode != "" {
		t.Fatalf("unknown promo stored: %+v %q", r.Promo, w.order.PromoCode)
	}
	if r.Prompts[0] != PromptPromoUnknown {
		t.Fatalf("prompts = %v", r.Prompts)
	}
}

func TestInvalidInputLeavesOrderUnchanged(t *testing.T) {
	cases := []struct {
		state State
		input Input
		hint  Prompt
	}{
		{StateRooms, Text("abc"), PromptInvalidNumber},
		{StateRooms, Text("-1"), PromptInvalidNumber},
		{StateBathrooms, Text("1.5"), PromptInvalidNumber},
		{StateWardrobeArea, Text("0"), PromptInvalidDecimal},
		{StateWindowCount, Text("много"), PromptInvalidDecimal},
		{StateWindowCount, Text("-2"), PromptInvalidDecimal},
		{StateWindowCount, Text("1e5000000"), PromptInvalidDecimal},
		{StateWindowCount, Text("1001"), PromptInvalidDecimal},
		{StateWardrobeArea, Text("2.5e3"), PromptInvalidDecimal},
		{StatePostRenovationArea, Text("0"), PromptInvalidNumber},
		{StateCarpetArea, Text("x"), PromptInvalidNumber},
		{StateChairCount, Text(""), PromptInvalidNumber},
		{StateKitchen, Text("может быть"), PromptUseButtons},
		{StateSofaSize, sofa("9"), PromptUseButtons},
		{StateMattressSize, Text("большой"), PromptUseButtons},
		{StateSummary, Text("ну"), PromptUseButtons},
		{StatePromoChoice, Text("?"), PromptUseButtons},
		{StateConfirm, Text("ок"), PromptUseButtons},
		{StatePhone, Text("   "), PromptEmptyText},
		{StateCategory, Text("уборка"), PromptUseButtons},
	}
	m := NewMachine(nil)
	for _, tc := range cases {
		o := order.New()
		o.SetCategory(order.CategoryApartmentOrHouse, order.PremisesHouse)
		o.Rooms = order.Ptr(2)
		before := o.Clone()

		next, r := m.Transition(tc.state, o, tc.input)
		if next != tc.state {
			t.Fatalf("%s %q: moved to %s", tc.state, tc.input.Text, next)
		}
		if !reflect.DeepEqual(before, *o) {
			t.Fatalf("%s %q: order mutated", tc.state, tc.input.Text)
		}
		want := []Prompt{tc.hint, PromptFor(tc.state)}
		if !reflect.DeepEqual(r.Prompts, want) {
			t.Fatalf("%s %q: prompts %v, want %v", tc.state, tc.input.Text, r.Prompts, want)
		}
	}
}

func TestDecimalCommaAccepted(t *testing.T) {
	w := newWalk(t)
	w.state = StateWindowCount
	w.order.SetCategory(order.CategoryWindows, "")
	w.send(Text("2,5"), StatePhone)
	if !w.order.WindowCount.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("window count = %s", w.order.WindowCount)
	}
}

func TestParsePositiveDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2,5", "2.5", true},
		{" 12 ", "12", true},
		{"1000", "1000", true},
		{"1000.5", "", false},
		{"1e3", "", false},
		{"1E-2", "", false},
		{"+3", "", false},
		{".5", "", false},
		{"0", "", false},
	}
	for _, tc := range cases {
		v, ok := parsePositiveDecimal(tc.in)
		if ok != tc.ok || (ok && v.String() != tc.want) {
			t.Fatalf("parsePositiveDecimal(%q) = %s, %v", tc.in, v, ok)
		}
	}
}

func TestAddOnSelectionIsIdempotent(t *testing.T) {
	w := newWalk(t)
	w.state = StateAddOns
	w.order.SetCategory(order.CategoryApartmentOrHouse, order.PremisesApartment)
	for i := 0; i < 3; i++ {
		r := w.send(addOn(order.AddOnOven), StateAddOns)
		if len(r.Prompts) != 0 {
			t.Fatalf("add-on tap produced prompts: %v", r.Prompts)
		}
	}
	w.send(addOn(order.AddOnWardrobe), StateAddOns)
	if len(w.order.AddOns) != 2 {
		t.Fatalf("add-ons = %v", w.order.AddOns)
	}
	w.send(done(), StateWardrobeArea)
	w.send(Text("3.5"), StateWindowsOffer)
}

func TestNoneClearsAddOns(t *testing.T) {
	w := newWalk(t)
	w.state = StateAddOns
	w.order.SetCategory(order.CategoryApartmentOrHouse, order.PremisesApartment)
	w.send(addOn(order.AddOnFridge), StateAddOns)
	w.send(none(), StateWindowsOffer)
	if len(w.order.AddOns) != 0 {
		t.Fatalf("add-ons not cleared: %v", w.order.AddOns)
	}
}

func TestCompanionPriorityOrder(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryDryCleaning, ""), StateDryCleaningItems)
	for _, d := range []order.DryItem{order.DryHeadboard, order.DryChairs, order.DryCarpet, order.DryMattress, order.DrySofa, order.DryChairs} {
		w.send(dryItem(d), StateDryCleaningItems)
	}
	if len(w.order.DryItems) != 5 {
		t.Fatalf("dry items = %v", w.order.DryItems)
	}
	w.send(done(), StateSofaSize)
	w.send(sofa(order.Sofa2), StateMattressSize)
	w.send(mattress(order.MattressDoubleTwoSides), StateCarpetArea)
	w.send(Text("6"), StateChairCount)
	r := w.send(Text("4"), StateSummary)

	// 4005 + 11000 + 6*320 + 4*450 + 1600
	if !r.Quote.Total.Equal(decimal.NewFromInt(20325)) {
		t.Fatalf("total = %s", r.Quote.Total)
	}
}

func TestHeadboardOnlyGoesToSummary(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryDryCleaning, ""), StateDryCleaningItems)
	w.send(dryItem(order.DryHeadboard), StateDryCleaningItems)
	w.send(done(), StateSummary)
}

func TestDryCleaningNoneClears(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryDryCleaning, ""), StateDryCleaningItems)
	w.send(dryItem(order.DrySofa), StateDryCleaningItems)
	w.send(none(), StateSummary)
	if len(w.order.DryItems) != 0 {
		t.Fatalf("dry items = %v", w.order.DryItems)
	}
}

func TestPostRenovationCrossSell(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryPostRenovation, ""), StatePostRenovationArea)
	w.send(Text("40"), StateWindowsOffer)
	w.send(yes(), StateWindowCount)
	w.send(Text("2"), StateDryCleaningOffer)
	w.send(yes(), StateDryCleaningItems)
	w.send(dryItem(order.DryCarpet), StateDryCleaningItems)
	w.send(done(), StateCarpetArea)
	r := w.send(Text("5"), StateSummary)

	codes := make([]string, 0, len(r.Quote.Lines))
	for _, l := range r.Quote.Lines {
		codes = append(codes, l.Code)
	}
	if !reflect.DeepEqual(codes, []string{"post_renovation", "dry.carpet", "windows"}) {
		t.Fatalf("lines = %v", codes)
	}
}

func TestCommercialFlow(t *testing.T) {
	w := newWalk(t)
	w.send(category(order.CategoryCommercial, ""), StateCommercialDetails)
	r := w.send(Text("Офис 150 м², ежедневная уборка"), StateSummary)
	if !reflect.DeepEqual(r.Prompts, []Prompt{PromptCommercialReceived, PromptSummary}) {
		t.Fatalf("prompts = %v", r.Prompts)
	}
	if r.Quote == nil || !r.Quote.Individual() {
		t.Fatalf("commercial quote should be individual: %+v", r.Quote)
	}
	w.send(Input{Kind: KindCancelOrder}, StateIdle)
}

func TestConfirmEditKeepsContact(t *testing.T) {
	w := newWalk(t)
	w.state = StatePhone
	w.order.SetCategory(order.CategoryWindows, "")
	w.send(Text("111"), StateAddress)
	w.send(Text("addr"), StateDate)
	w.send(Text("date"), StateName)
	w.send(Text("name"), StateConfirm)
	r := w.send(Input{Kind: KindEdit}, StatePhone)
	if !reflect.DeepEqual(r.Prompts, []Prompt{PromptEditContact, PromptPhone}) {
		t.Fatalf("prompts = %v", r.Prompts)
	}
	if w.order.Contact.Address != "addr" {
		t.Fatalf("contact discarded on edit: %+v", w.order.Contact)
	}
	w.send(Text("222"), StateAddress)
	if w.order.Contact.Phone != "222" || w.order.Contact.Name != "name" {
		t.Fatalf("contact = %+v", w.order.Contact)
	}
}

func TestIdleFallback(t *testing.T) {
	m := NewMachine(nil)
	next, r := m.Transition(StateIdle, order.New(), Text("привет"))
	if next != StateIdle || !reflect.DeepEqual(r.Prompts, []Prompt{PromptFallback}) {
		t.Fatalf("idle: %s %v", next, r.Prompts)
	}
}

func TestEveryStateHasPrompt(t *testing.T) {
	states := []State{
		StateCategory, StateKitchen, StateRooms, StateBathrooms, StateAddOns, StateWardrobeArea,
		StateWindowsOffer, StateWindowsGuide, StateWindowCount, StateDryCleaningOffer,
		StateDryCleaningItems, StateSofaSize, StateMattressSize, StateCarpetArea, StateChairCount,
		StatePostRenovationArea, StateCommercialDetails, StateSummary, StatePromoChoice,
		StatePromoCodeEntry, StatePhone, StateAddress, StateDate, StateName, StateConfirm,
		StateSpecialRequests,
	}
	for _, s := range states {
		if PromptFor(s) == PromptFallback {
			t.Fatalf("state %s has no prompt", s)
		}
	}
}
