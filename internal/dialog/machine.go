package dialog

import (
	"github.com/PetrKevich/bot/internal/handoff"
	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/pricing"
)

// Reply is the outcome of one transition.
type Reply struct {
	State   State
	Prompts []Prompt
	// Order is a snapshot taken after the transition.
	Order order.Order
	// Quote is set whenever one of the prompts shows prices.
	Quote *pricing.Quote
	// Promo is set when the customer just entered a recognized code.
	Promo *pricing.Promo
	// Submitted marks the transition that completed the order.
	Submitted bool
	// Handoff is filled by Service for submitted orders.
	Handoff *handoff.Payload
}

// Machine is the pure transition function of the conversation. It holds no per-user data.
type Machine struct {
	engine *pricing.Engine
}

// NewMachine builds a machine pricing against engine.
func NewMachine(engine *pricing.Engine) *Machine {
	if engine == nil {
		engine = pricing.NewEngine(nil)
	}
	return &Machine{engine: engine}
}

// Engine exposes the pricing engine used for quotes.
func (m *Machine) Engine() *pricing.Engine {
	return m.engine
}

type step struct {
	next      State
	prompts   []Prompt
	promo     *pricing.Promo
	submitted bool
}

func to(next State, prompts ...Prompt) step {
	return step{next: next, prompts: prompts}
}

// Transition consumes one input in state s, mutating o only when the input is valid.
func (m *Machine) Transition(s State, o *order.Order, in Input) (State, Reply) {
	st := m.step(s, o, in)
	r := Reply{State: st.next, Prompts: st.prompts, Order: o.Clone(), Promo: st.promo, Submitted: st.submitted}
	for _, p := range st.prompts {
		if p.NeedsQuote() {
			q := m.engine.Quote(r.Order)
			r.Quote = &q
			break
		}
	}
	return r.State, r
}

func (m *Machine) step(s State, o *order.Order, in Input) step {
	switch s {
	case StateIdle, "":
		return to(StateIdle, PromptFallback)
	case StateCategory:
		return m.category(o, in)
	case StateKitchen:
		switch in.Kind {
		case KindYes, KindNo:
			o.Kitchen = order.Ptr(in.Kind == KindYes)
			return to(StateRooms, PromptRooms)
		}
	case StateRooms:
		if n, ok := parseCount(in.Text); ok {
			o.Rooms = &n
			return to(StateBathrooms, PromptBathrooms)
		}
		return reprompt(s, PromptInvalidNumber)
	case StateBathrooms:
		if n, ok := parseCount(in.Text); ok {
			o.Bathrooms = &n
			return to(StateAddOns, PromptAddOns)
		}
		return reprompt(s, PromptInvalidNumber)
	case StateAddOns:
		return m.addOns(o, in)
	case StateWardrobeArea:
		if v, ok := parsePositiveDecimal(in.Text); ok {
			o.WardrobeArea = &v
			return to(StateWindowsOffer, PromptWindowsOffer)
		}
		return reprompt(s, PromptInvalidDecimal)
	case StateWindowsOffer:
		switch in.Kind {
		case KindYes, KindHowToCount:
			return windowsGuide()
		case KindNo:
			return m.afterWindows(o)
		}
	case StateWindowsGuide:
		if in.Kind == KindHowToCount || in.Kind == KindYes {
			return windowsGuide()
		}
		if v, ok := parsePositiveDecimal(in.Text); ok {
			o.WindowCount = &v
			return m.afterWindows(o)
		}
	case StateWindowCount:
		if v, ok := parsePositiveDecimal(in.Text); ok {
			o.WindowCount = &v
			return m.afterWindows(o)
		}
		return reprompt(s, PromptInvalidDecimal)
	case StateDryCleaningOffer:
		switch in.Kind {
		case KindYes:
			return to(StateDryCleaningItems, PromptDryCleaningItems)
		case KindNo:
			return m.summary(o)
		}
	case StateDryCleaningItems:
		return m.dryItems(o, in)
	case StateSofaSize:
		if in.Kind == KindSofa {
			if _, ok := m.engine.Catalog().SofaPrice(in.Sofa); ok {
				o.Sofa = in.Sofa
				return m.nextCompanion(o)
			}
		}
	case StateMattressSize:
		if in.Kind == KindMattress {
			if _, ok := m.engine.Catalog().MattressPrice(in.Mattress); ok {
				o.Mattress = in.Mattress
				return m.nextCompanion(o)
			}
		}
	case StateCarpetArea:
		if n, ok := parseCount(in.Text); ok {
			o.CarpetArea = &n
			return m.nextCompanion(o)
		}
		return reprompt(s, PromptInvalidNumber)
	case StateChairCount:
		if n, ok := parseCount(in.Text); ok {
			o.ChairCount = &n
			return m.nextCompanion(o)
		}
		return reprompt(s, PromptInvalidNumber)
	case StatePostRenovationArea:
		if n, ok := parsePositiveInt(in.Text); ok {
			o.PostRenovationArea = &n
			return to(StateWindowsOffer, PromptWindowsOffer)
		}
		return reprompt(s, PromptInvalidNumber)
	case StateCommercialDetails:
		if text, ok := freeText(in); ok {
			o.CommercialDetails = text
			return to(StateSummary, PromptCommercialReceived, PromptSummary)
		}
		return reprompt(s, PromptEmptyText)
	case StateSummary:
		switch in.Kind {
		case KindStartCheckout:
			return to(StatePromoChoice, PromptPromoChoice)
		case KindCancelOrder:
			return to(StateIdle, PromptOrderCancelled)
		}
	case StatePromoChoice:
		switch in.Kind {
		case KindYes:
			return to(StatePromoCodeEntry, PromptPromoCode)
		case KindNo:
			return to(StatePhone, PromptPhone)
		}
	case StatePromoCodeEntry:
		return m.promoCode(o, in)
	case StatePhone:
		return m.contact(s, in, &o.Contact.Phone, StateAddress)
	case StateAddress:
		return m.contact(s, in, &o.Contact.Address, StateDate)
	case StateDate:
		return m.contact(s, in, &o.Contact.Date, StateName)
	case StateName:
		return m.contact(s, in, &o.Contact.Name, StateConfirm)
	case StateConfirm:
		switch in.Kind {
		case KindYes:
			return to(StateSpecialRequests, PromptSpecialRequests)
		case KindEdit, KindNo:
			return to(StatePhone, PromptEditContact, PromptPhone)
		}
	case StateSpecialRequests:
		text, ok := freeText(in)
		if !ok {
			return reprompt(s, PromptEmptyText)
		}
		o.Contact.SpecialRequests = text
		st := to(StateIdle, PromptThanks, PromptAnotherOrder)
		st.submitted = true
		return st
	}
	return reprompt(s, PromptUseButtons)
}

// reprompt keeps the state and asks its question again after a hint.
func reprompt(s State, hint Prompt) step {
	return to(s, hint, PromptFor(s))
}

func (m *Machine) category(o *order.Order, in Input) step {
	if in.Kind != KindCategory || in.Category == order.CategoryNone {
		return reprompt(StateCategory, PromptUseButtons)
	}
	if !o.SetCategory(in.Category, in.Premises) {
		return reprompt(StateCategory, PromptUseButtons)
	}
	switch in.Category {
	case order.CategoryApartmentOrHouse:
		return to(StateKitchen, PromptKitchen)
	case order.CategoryPostRenovation:
		return to(StatePostRenovationArea, PromptPostRenovationArea)
	case order.CategoryWindows:
		return to(StateWindowsGuide, PromptWindowsIntro)
	case order.CategoryDryCleaning:
		return to(StateDryCleaningItems, PromptDryCleaningItems)
	case order.CategoryCommercial:
		return to(StateCommercialDetails, PromptCommercialDetails)
	}
	return reprompt(StateCategory, PromptUseButtons)
}

func (m *Machine) addOns(o *order.Order, in Input) step {
	switch in.Kind {
	case KindAddOn:
		o.AddAddOn(in.AddOn)
		return to(StateAddOns)
	case KindDone:
		if o.HasAddOn(order.AddOnWardrobe) && o.WardrobeArea == nil {
			return to(StateWardrobeArea, PromptWardrobeArea)
		}
		return to(StateWindowsOffer, PromptWindowsOffer)
	case KindNone:
		o.ClearAddOns()
		return to(StateWindowsOffer, PromptWindowsOffer)
	}
	return reprompt(StateAddOns, PromptUseButtons)
}

func (m *Machine) dryItems(o *order.Order, in Input) step {
	switch in.Kind {
	case KindDryItem:
		o.AddDryItem(in.DryItem)
		return to(StateDryCleaningItems)
	case KindDone:
		return m.nextCompanion(o)
	case KindNone:
		o.ClearDryItems()
		return m.summary(o)
	}
	return reprompt(StateDryCleaningItems, PromptUseButtons)
}

// companionStates maps dry-cleaning items to the state that asks for their companion.
var companionStates = map[order.DryItem]State{
	order.DrySofa:     StateSofaSize,
	order.DryMattress: StateMattressSize,
	order.DryCarpet:   StateCarpetArea,
	order.DryChairs:   StateChairCount,
}

// nextCompanion asks for the first missing companion in priority order, or moves to the summary.
func (m *Machine) nextCompanion(o *order.Order) step {
	for _, d := range order.DryItems {
		if !o.HasDryItem(d) || o.HasCompanion(d) {
			continue
		}
		if s, ok := companionStates[d]; ok {
			return to(s, PromptFor(s))
		}
	}
	return m.summary(o)
}

func windowsGuide() step {
	return to(StateWindowCount, PromptWindowsGuide, PromptWindowExamples, PromptWindowCount)
}

// afterWindows offers dry cleaning to the categories that cross-sell it.
func (m *Machine) afterWindows(o *order.Order) step {
	switch o.Category {
	case order.CategoryApartmentOrHouse, order.CategoryPostRenovation:
		return to(StateDryCleaningOffer, PromptDryCleaningOffer)
	}
	return m.summary(o)
}

// summary shows the quote. Window-only orders skip checkout and promo and go straight to contacts.
func (m *Machine) summary(o *order.Order) step {
	if o.Category == order.CategoryWindows {
		return to(StatePhone, PromptSummaryFinal, PromptPhone)
	}
	return to(StateSummary, PromptSummary)
}

func (m *Machine) promoCode(o *order.Order, in Input) step {
	text, ok := freeText(in)
	if !ok {
		return reprompt(StatePromoCodeEntry, PromptEmptyText)
	}
	p, known := m.engine.Promo(text)
	if !known {
		o.PromoCode = ""
		return to(StatePhone, PromptPromoUnknown, PromptPhone)
	}
	o.PromoCode = pricing.NormalizeCode(p.Code)
	st := to(StatePhone, PromptPromoApplied, PromptPhone)
	st.promo = &p
	return st
}

func (m *Machine) contact(s State, in Input, field *string, next State) step {
	text, ok := freeText(in)
	if !ok {
		return reprompt(s, PromptEmptyText)
	}
	*field = text
	return to(next, PromptFor(next))
}
