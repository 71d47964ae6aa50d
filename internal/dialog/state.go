// Package dialog drives the ordering conversation: it turns classified customer
// input into order mutations and the prompts to show next.
package dialog

// State names one step of the conversation.
type State string

const (
	StateIdle               State = "idle"
	StateCategory           State = "category"
	StateKitchen            State = "kitchen"
	StateRooms              State = "rooms"
	StateBathrooms          State = "bathrooms"
	StateAddOns             State = "add_ons"
	StateWardrobeArea       State = "wardrobe_area"
	StateWindowsOffer       State = "windows_offer"
	StateWindowsGuide       State = "windows_guide"
	StateWindowCount        State = "window_count"
	StateDryCleaningOffer   State = "dry_cleaning_offer"
	StateDryCleaningItems   State = "dry_cleaning_items"
	StateSofaSize           State = "sofa_size"
	StateMattressSize       State = "mattress_size"
	StateCarpetArea         State = "carpet_area"
	StateChairCount         State = "chair_count"
	StatePostRenovationArea State = "post_renovation_area"
	StateCommercialDetails  State = "commercial_details"
	StateSummary            State = "summary"
	StatePromoChoice        State = "promo_choice"
	StatePromoCodeEntry     State = "promo_code_entry"
	StatePhone              State = "phone"
	StateAddress            State = "address"
	StateDate               State = "date"
	StateName               State = "name"
	StateConfirm            State = "confirm"
	StateSpecialRequests    State = "special_requests"
)

// InProgress reports whether the state belongs to a live conversation.
func (s State) InProgress() bool {
	return s != StateIdle && s != ""
}
