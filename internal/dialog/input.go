package dialog

import "github.com/PetrKevich/bot/internal/order"

// Kind classifies an inbound message.
type Kind int

const (
	// KindText is free text that matched no button label.
	KindText Kind = iota
	KindYes
	KindNo
	KindDone
	KindNone
	KindCategory
	KindAddOn
	KindDryItem
	KindSofa
	KindMattress
	KindHowToCount
	KindStartCheckout
	KindCancelOrder
	KindEdit
	// KindRestart and KindCancel come from commands and are handled by Service.
	KindRestart
	KindCancel
)

var kindNames = [...]string{
	KindText:          "text",
	KindYes:           "yes",
	KindNo:            "no",
	KindDone:          "done",
	KindNone:          "none",
	KindCategory:      "category",
	KindAddOn:         "add_on",
	KindDryItem:       "dry_item",
	KindSofa:          "sofa",
	KindMattress:      "mattress",
	KindHowToCount:    "how_to_count",
	KindStartCheckout: "start_checkout",
	KindCancelOrder:   "cancel_order",
	KindEdit:          "edit",
	KindRestart:       "restart",
	KindCancel:        "cancel",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Input is a message after classification. Text always holds the raw message.
type Input struct {
	Kind     Kind
	Text     string
	Category order.Category
	Premises order.Premises
	AddOn    order.AddOn
	DryItem  order.DryItem
	Sofa     order.SofaTier
	Mattress order.MattressSpec
}

// Text wraps free text.
func Text(s string) Input { return Input{Kind: KindText, Text: s} }
