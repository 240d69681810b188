package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the canonical catalog document. Specifications are persisted
// in the wrapper form (see specs.go); read paths expose the decoded list.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Price          decimal.Decimal `json:"price"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	Stock          int             `json:"stock"`
	CategoryID     string          `json:"categoryId,omitempty"`
	Images         []string        `json:"images"`
	Variants       []Variant       `json:"variants"`
	Specifications []string        `json:"specifications"`
	Reviews        []Review        `json:"reviews"`
	Rating         float64         `json:"rating"`
	NumReviews     int             `json:"numReviews"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Variant groups the image URLs belonging to one color option. The same
// URLs also stay in the product's flat Images list for older readers.
type Variant struct {
	Color  string   `json:"color"`
	Images []string `json:"images"`
}

type Review struct {
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	Email     string    `json:"email,omitempty"`
	Images    []string  `json:"images,omitempty"`
	UserID    string    `json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SpecEntry is one key/value pair of a product's specification list.
type SpecEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductView is the read shape of a product: specifications decoded out of
// the wrapper and the category resolved (nil means uncategorized, which
// also covers products whose category was deleted).
type ProductView struct {
	Product
	Specifications []SpecEntry `json:"specifications"`
	Category       *Category   `json:"category,omitempty"`
}
