package domain

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultCategory = "Uncategorized"
	MaxRating       = 5.0
)

// Product is a catalog item. Rating and ReviewCount are derived from
// AddRating and never set directly.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url,omitempty"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int64     `json:"-"`
}

// NewProduct builds an active product with a fresh id. Name and description
// are trimmed; a blank category falls back to DefaultCategory.
func NewProduct(name, description string, price float64, stock int, category string) (*Product, error) {
	if price < 0 || math.IsNaN(price) {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	now := time.Now().UTC()
	p := &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.SetCategory(category)
	return p, nil
}

// CategoryKey is the case-insensitive index key for a category.
func CategoryKey(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func (p *Product) CategoryKey() string {
	return CategoryKey(p.Category)
}

func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

func (p *Product) SetDescription(description string) {
	p.Description = strings.TrimSpace(description)
}

func (p *Product) SetPrice(price float64) error {
	if price < 0 || math.IsNaN(price) {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	p.Stock = stock
	return nil
}

func (p *Product) SetCategory(category string) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	p.Category = category
}

func (p *Product) SetImageURL(url string) {
	p.ImageURL = url
}

// AddStock increases stock by quantity and returns the new level. A quantity
// that would overflow the stock counter is rejected.
func (p *Product) AddStock(quantity int) (int, error) {
	if quantity <= 0 || quantity > math.MaxInt-p.Stock {
		return p.Stock, ErrInvalidQuantity
	}
	p.Stock += quantity
	return p.Stock, nil
}

// RemoveStock decreases stock by quantity and returns the new level.
// Stock is left untouched on error.
func (p *Product) RemoveStock(quantity int) (int, error) {
	if quantity <= 0 {
		return p.Stock, ErrInvalidQuantity
	}
	if quantity > p.Stock {
		return p.Stock, ErrInsufficientStock
	}
	p.Stock -= quantity
	return p.Stock, nil
}

// AddRating folds rating into the running mean.
func (p *Product) AddRating(rating float64) error {
	if math.IsNaN(rating) || rating < 0 || rating > MaxRating {
		return ErrInvalidRating
	}
	total := p.Rating*float64(p.ReviewCount) + rating
	p.ReviewCount++
	p.Rating = total / float64(p.ReviewCount)
	return nil
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
