package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentSignIn
	IntentSignOut
	IntentProfile
	IntentShowDish
	IntentIncrease
	IntentDecrease
	IntentAddToCart
	IntentNewDish
	IntentEditDish
	IntentHelp
	IntentQuit
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentSignIn:
		return "sign_in"
	case IntentSignOut:
		return "sign_out"
	case IntentProfile:
		return "profile"
	case IntentShowDish:
		return "show_dish"
	case IntentIncrease:
		return "increase"
	case IntentDecrease:
		return "decrease"
	case IntentAddToCart:
		return "add_to_cart"
	case IntentNewDish:
		return "new_dish"
	case IntentEditDish:
		return "edit_dish"
	case IntentHelp:
		return "help"
	case IntentQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user command.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the dish ID for show_dish
}
