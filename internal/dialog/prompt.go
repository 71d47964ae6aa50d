package dialog

// Prompt identifies a message the transport must show. Rendering is left to the transport.
type Prompt string

const (
	PromptWelcome            Prompt = "welcome"
	PromptCategory           Prompt = "category"
	PromptKitchen            Prompt = "kitchen"
	PromptRooms              Prompt = "rooms"
	PromptBathrooms          Prompt = "bathrooms"
	PromptAddOns             Prompt = "add_ons"
	PromptWardrobeArea       Prompt = "wardrobe_area"
	PromptWindowsOffer       Prompt = "windows_offer"
	PromptWindowsIntro       Prompt = "windows_intro"
	PromptWindowsGuide       Prompt = "windows_guide"
	PromptWindowExamples     Prompt = "window_examples"
	PromptWindowCount        Prompt = "window_count"
	PromptDryCleaningOffer   Prompt = "dry_cleaning_offer"
	PromptDryCleaningItems   Prompt = "dry_cleaning_items"
	PromptSofaSize           Prompt = "sofa_size"
	PromptMattressSize       Prompt = "mattress_size"
	PromptCarpetArea         Prompt = "carpet_area"
	PromptChairCount         Prompt = "chair_count"
	PromptPostRenovationArea Prompt = "post_renovation_area"
	PromptCommercialDetails  Prompt = "commercial_details"
	PromptCommercialReceived Prompt = "commercial_received"
	PromptSummary            Prompt = "summary"
	PromptSummaryFinal       Prompt = "summary_final"
	PromptOrderCancelled     Prompt = "order_cancelled"
	PromptPromoChoice        Prompt = "promo_choice"
	PromptPromoCode          Prompt = "promo_code"
	PromptPromoApplied       Prompt = "promo_applied"
	PromptPromoUnknown       Prompt = "promo_unknown"
	PromptPhone              Prompt = "phone"
	PromptAddress            Prompt = "address"
	PromptDate               Prompt = "date"
	PromptName               Prompt = "name"
	PromptConfirm            Prompt = "confirm"
	PromptEditContact        Prompt = "edit_contact"
	PromptSpecialRequests    Prompt = "special_requests"
	PromptThanks             Prompt = "thanks"
	PromptAnotherOrder       Prompt = "another_order"
	PromptCancelled          Prompt = "cancelled"
	PromptFallback           Prompt = "fallback"

	PromptInvalidNumber  Prompt = "invalid_number"
	PromptInvalidDecimal Prompt = "invalid_decimal"
	PromptUseButtons     Prompt = "use_buttons"
	PromptEmptyText      Prompt = "empty_text"
)

// NeedsQuote reports whether rendering the prompt requires a price quote.
func (p Prompt) NeedsQuote() bool {
	switch p {
	case PromptSummary, PromptSummaryFinal, PromptPromoApplied:
		return true
	}
	return false
}

// statePrompts is the question asked on entering, or re-entering, a state.
var statePrompts = map[State]Prompt{
	StateIdle:               PromptFallback,
	StateCategory:           PromptCategory,
	StateKitchen:            PromptKitchen,
	StateRooms:              PromptRooms,
	StateBathrooms:          PromptBathrooms,
	StateAddOns:             PromptAddOns,
	StateWardrobeArea:       PromptWardrobeArea,
	StateWindowsOffer:       PromptWindowsOffer,
	StateWindowsGuide:       PromptWindowsIntro,
	StateWindowCount:        PromptWindowCount,
	StateDryCleaningOffer:   PromptDryCleaningOffer,
	StateDryCleaningItems:   PromptDryCleaningItems,
	StateSofaSize:           PromptSofaSize,
	StateMattressSize:       PromptMattressSize,
	StateCarpetArea:         PromptCarpetArea,
	StateChairCount:         PromptChairCount,
	StatePostRenovationArea: PromptPostRenovationArea,
	StateCommercialDetails:  PromptCommercialDetails,
	StateSummary:            PromptSummary,
	StatePromoChoice:        PromptPromoChoice,
	StatePromoCodeEntry:     PromptPromoCode,
	StatePhone:              PromptPhone,
	StateAddress:            PromptAddress,
	StateDate:               PromptDate,
	StateName:               PromptName,
	StateConfirm:            PromptConfirm,
	StateSpecialRequests:    PromptSpecialRequests,
}

// PromptFor returns the question asked in state s.
func PromptFor(s State) Prompt {
	if p, ok := statePrompts[s]; ok {
		return p
	}
	return PromptFallback
}
