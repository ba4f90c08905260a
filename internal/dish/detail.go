package dish

import (
	"context"
	"fmt"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Quantity bounds for one order line.
const (
	minQuantity = 1
	maxQuantity = 20
)

// Detail panel messages.
const (
	warnQuantityMax = "The maximum is 20 units"
	warnQuantityMin = "The minimum is 1 unit"

	msgLoadDishFailed = "Could not load the dish."
)

// PanelState tracks the detail fetch lifecycle.
type PanelState int

const (
	PanelLoading PanelState = iota
	PanelLoaded
	PanelFailed
)

// String returns a human-readable panel state.
func (s PanelState) String() string {
	switch s {
	case PanelLoading:
		return "loading"
	case PanelLoaded:
		return "loaded"
	case PanelFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Panel manages one dish detail view: a single fetch, a bounded
// quantity counter, and the customer's add-to-order handoff. A Panel is
// created per view entry, which resets the quantity to one.
type Panel struct {
	api      domain.DishAPI
	cart     domain.Cart
	notifier domain.Notifier
	log      *logger.Logger

	state    PanelState
	dish     *domain.Dish
	quantity int
}

// NewPanel creates a panel in the loading state with quantity one.
func NewPanel(api domain.DishAPI, cart domain.Cart, notifier domain.Notifier, log *logger.Logger) *Panel {
	return &Panel{
		api:      api,
		cart:     cart,
		notifier: notifier,
		log:      log,
		state:    PanelLoading,
		quantity: minQuantity,
	}
}

// State returns the fetch lifecycle state.
func (p *Panel) State() PanelState { return p.state }

// Dish returns the loaded record, nil until the fetch succeeds.
func (p *Panel) Dish() *domain.Dish { return p.dish }

// Quantity returns the chosen quantity.
func (p *Panel) Quantity() int { return p.quantity }

// FormattedQuantity renders the quantity as a two-digit display value.
func (p *Panel) FormattedQuantity() string {
	return fmt.Sprintf("%02d", p.quantity)
}

// ImageURL resolves the loaded dish's image, empty until loaded.
func (p *Panel) ImageURL() string {
	if p.dish == nil {
		return ""
	}
	return p.api.ImageURL(p.dish.Image)
}

// Load fetches the dish once. On failure the panel moves to the failed
// state and the user is told, rather than rendering as forever-loading.
func (p *Panel) Load(ctx context.Context, id int) error {
	dish, err := p.api.GetDish(ctx, id)
	if err != nil {
		p.state = PanelFailed
		p.log.Error("loading dish %d: %v", id, err)
		if msg, ok := domain.RemoteMessage(err); ok {
			p.notifier.Error(ctx, msg)
		} else {
			p.notifier.Error(ctx, msgLoadDishFailed)
		}
		return err
	}

	p.dish = dish
	p.state = PanelLoaded
	p.log.Debug("loaded dish %d (%s)", dish.ID, dish.Title)
	return nil
}

// Increase bumps the quantity by one. At the upper bound it warns and
// leaves the value unchanged.
func (p *Panel) Increase(ctx context.Context) {
	if p.quantity >= maxQuantity {
		p.notifier.Warn(ctx, warnQuantityMax)
		return
	}
	p.quantity++
}

// Decrease lowers the quantity by one. At the lower bound it warns and
// leaves the value unchanged.
func (p *Panel) Decrease(ctx context.Context) {
	if p.quantity <= minQuantity {
		p.notifier.Warn(ctx, warnQuantityMin)
		return
	}
	p.quantity--
}

// AddToCart hands the loaded dish, the chosen quantity, and the
// resolved image URL to the cart collaborator. No panel state changes.
func (p *Panel) AddToCart(ctx context.Context) error {
	if p.state != PanelLoaded {
		return domain.ErrNotFound
	}
	return p.cart.Add(ctx, p.dish, p.quantity, p.ImageURL())
}
