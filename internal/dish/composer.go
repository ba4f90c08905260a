// Package dish implements the two stateful workflows built on top of
// the session: dish composition (the admin creation form) and the dish
// detail / order panel. Both are owned by the single UI goroutine and
// are not synchronized.
package dish

import (
	"context"
	"io"
	"strings"

	"foodexplorer/internal/domain"
	"foodexplorer/internal/logger"
)

// Minimum trimmed length for an accepted ingredient name.
const minIngredientLen = 3

// Validation warnings, one per fail-fast check, in check order.
const (
	warnNoImage       = "You have not chosen an image for the dish!"
	warnNoTitle       = "You have not named the dish!"
	warnNoIngredients = "Add at least one ingredient!"
	warnPendingLeft   = "You left an ingredient in the staging field. Press + to add it, or clear it first!"
	warnNoCategory    = "You have not selected a category for the dish!"
	warnNoPrice       = "You have not set a price for the dish!"
	warnNoDescription = "You have not written a description for the dish!"

	warnBadIngredient = "That is not a valid ingredient name!"

	msgDishCreated      = "Dish created!"
	msgCreateDishFailed = "Could not create the dish."
)

// Composer accumulates a draft dish and submits it as one multipart
// creation request. A Composer is created fresh when the creation
// workflow starts and dropped when it ends, so no draft survives a
// submission.
type Composer struct {
	api      domain.DishAPI
	notifier domain.Notifier
	log      *logger.Logger

	image       *domain.FileUpload
	title       string
	description string
	category    domain.Category
	price       string
	ingredients []string
	pending     string
	submitting  bool
}

// NewComposer creates an empty draft.
func NewComposer(api domain.DishAPI, notifier domain.Notifier, log *logger.Logger) *Composer {
	return &Composer{api: api, notifier: notifier, log: log}
}

// SetImage stages the dish image for upload.
func (c *Composer) SetImage(name string, data io.Reader) {
	c.image = &domain.FileUpload{Name: name, Data: data}
}

// SetTitle sets the dish name.
func (c *Composer) SetTitle(title string) { c.title = title }

// SetDescription sets the dish description.
func (c *Composer) SetDescription(description string) { c.description = description }

// SetCategory sets the menu category.
func (c *Composer) SetCategory(category domain.Category) { c.category = category }

// SetPrice sets the price as typed by the user.
func (c *Composer) SetPrice(price string) { c.price = price }

// SetPendingIngredient updates the ingredient staging field.
func (c *Composer) SetPendingIngredient(value string) { c.pending = value }

// PendingIngredient returns the current staging field value.
func (c *Composer) PendingIngredient() string { return c.pending }

// Ingredients returns a copy of the collected ingredient names in
// insertion order.
func (c *Composer) Ingredients() []string {
	out := make([]string, len(c.ingredients))
	copy(out, c.ingredients)
	return out
}

// Submitting reports whether a creation request is in flight. The UI
// disables the submit action while true.
func (c *Composer) Submitting() bool { return c.submitting }

// AddIngredient commits the staging field into the ingredient list.
// Candidates shorter than three characters after trimming are rejected
// with a warning and no state change; accepted candidates are appended
// and the staging field cleared. Duplicates are allowed.
func (c *Composer) AddIngredient(ctx context.Context) {
	candidate := strings.TrimSpace(c.pending)
	if len(candidate) < minIngredientLen {
		c.notifier.Warn(ctx, warnBadIngredient)
		return
	}
	c.ingredients = append(c.ingredients, candidate)
	c.pending = ""
	c.log.Debug("ingredient added: %q (total %d)", candidate, len(c.ingredients))
}

// RemoveIngredient removes every occurrence equal to value from the
// ingredient list.
func (c *Composer) RemoveIngredient(value string) {
	kept := c.ingredients[:0]
	for _, ing := range c.ingredients {
		if ing != value {
			kept = append(kept, ing)
		}
	}
	c.ingredients = kept
}

// Submit validates the draft and issues the creation request. The
// checks run in a fixed order and stop at the first failure; each
// failure warns once and aborts without engaging the submitting flag.
// After a valid draft passes, exactly one request is issued and the
// submitting flag is cleared however the request settles.
func (c *Composer) Submit(ctx context.Context) error {
	if err := c.validate(ctx); err != nil {
		return err
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	dish := &domain.NewDish{
		Image:       c.image,
		Title:       c.title,
		Description: c.description,
		Category:    c.category,
		Price:       c.price,
		Ingredients: c.Ingredients(),
	}

	if err := c.api.CreateDish(ctx, dish); err != nil {
		c.log.Error("creating dish: %v", err)
		if msg, ok := domain.RemoteMessage(err); ok {
			c.notifier.Error(ctx, msg)
		} else {
			c.notifier.Error(ctx, msgCreateDishFailed)
		}
		return err
	}

	c.notifier.Success(ctx, msgDishCreated)
	return nil
}

func (c *Composer) validate(ctx context.Context) error {
	checks := []struct {
		field   string
		ok      bool
		warning string
	}{
		{"image", c.image != nil, warnNoImage},
		{"title", c.title != "", warnNoTitle},
		{"ingredients", len(c.ingredients) > 0, warnNoIngredients},
		{"pendingIngredient", c.pending == "", warnPendingLeft},
		{"category", c.category != domain.CategoryNone, warnNoCategory},
		{"price", c.price != "", warnNoPrice},
		{"description", c.description != "", warnNoDescription},
	}

	for _, check := range checks {
		if !check.ok {
			c.notifier.Warn(ctx, check.warning)
			return &domain.ValidationError{Field: check.field, Message: check.warning}
		}
	}
	return nil
}
