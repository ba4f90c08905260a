package domain

import "io"

// Dish is a catalog record fetched from the remote API.
type Dish struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Price       string       `json:"price"`
	Image       string       `json:"image"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Ingredient is a single ingredient record attached to a dish.
type Ingredient struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FileUpload is a local file staged for a multipart upload.
type FileUpload struct {
	Name string
	Data io.Reader
}

// NewDish is a validated draft ready to be submitted as one multipart
// creation request. Ingredients keep insertion order; duplicates are
// allowed.
type NewDish struct {
	Image       *FileUpload
	Title       string
	Description string
	Category    Category
	Price       string
	Ingredients []string
}

// Category classifies a dish on the menu.
type Category int

const (
	CategoryNone Category = iota
	CategoryDishes
	CategoryDrinks
	CategoryDessert
)

// String returns the wire value for the category.
func (c Category) String() string {
	switch c {
	case CategoryDishes:
		return "dishes"
	case CategoryDrinks:
		return "drinks"
	case CategoryDessert:
		return "dessert"
	default:
		return ""
	}
}

// categoryNames maps wire values to Category constants.
var categoryNames = map[string]Category{
	"dishes":  CategoryDishes,
	"drinks":  CategoryDrinks,
	"dessert": CategoryDessert,
}

// ParseCategory converts a wire value to a Category. Returns
// CategoryNone for unrecognized values.
func ParseCategory(name string) Category {
	if c, ok := categoryNames[name]; ok {
		return c
	}
	return CategoryNone
}
