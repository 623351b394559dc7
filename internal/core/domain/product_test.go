package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  Pen ", " Blue ink ", 1.5, 100, " Office ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "Pen" || p.Description != "Blue ink" || p.Category != "Office" {
		t.Fatalf("fields should be trimmed: %+v", p)
	}
	if p.ID == "" || !p.Active || p.Rating != 0 || p.ReviewCount != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.CategoryKey() != "office" {
		t.Fatalf("unexpected key %q", p.CategoryKey())
	}
}

func TestNewProduct_Validation(t *testing.T) {
	if _, err := NewProduct("x", "", -0.01, 1, ""); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if _, err := NewProduct("x", "", math.NaN(), 1, ""); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice for NaN, got %v", err)
	}
	if _, err := NewProduct("x", "", 1, -1, ""); !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	p, _ := NewProduct("x", "", 0, 0, "")
	if p.Category != DefaultCategory {
		t.Fatalf("expected default category, got %q", p.Category)
	}
}

func TestProduct_Stock(t *testing.T) {
	p, _ := NewProduct("Pen", "", 1, 10, "")

	if n, err := p.AddStock(5); err != nil || n != 15 {
		t.Fatalf("AddStock = %d, %v", n, err)
	}
	if _, err := p.AddStock(0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := p.AddStock(math.MaxInt); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity on overflow, got %v", err)
	}
	if p.Stock != 15 {
		t.Fatalf("rejected addition must leave stock unchanged, got %d", p.Stock)
	}
	if n, err := p.AddStock(math.MaxInt - 15); err != nil || n != math.MaxInt {
		t.Fatalf("AddStock up to MaxInt = %d, %v", n, err)
	}
	if err := p.SetStock(15); err != nil {
		t.Fatalf("SetStock: %v", err)
	}
	if _, err := p.RemoveStock(16); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if p.Stock != 15 {
		t.Fatalf("failed removal must leave stock unchanged, got %d", p.Stock)
	}
	if n, err := p.RemoveStock(15); err != nil || n != 0 {
		t.Fatalf("RemoveStock = %d, %v", n, err)
	}
}

func TestProduct_AddRating(t *testing.T) {
	p, _ := NewProduct("Pen", "", 1, 10, "")
	for _, r := range []float64{4, 2, 5} {
		if err := p.AddRating(r); err != nil {
			t.Fatalf("AddRating(%v): %v", r, err)
		}
	}
	if err := p.AddRating(6); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if p.ReviewCount != 3 || math.Abs(p.Rating-11.0/3) > 1e-9 {
		t.Fatalf("unexpected aggregate: %v over %d", p.Rating, p.ReviewCount)
	}
}

func TestProduct_Setters(t *testing.T) {
	p, _ := NewProduct("Pen", "", 1, 10, "Office")

	if err := p.SetName("   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := p.SetPrice(-1); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if err := p.SetStock(-1); !errors.Is(err, ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	p.SetCategory("")
	if p.Category != DefaultCategory {
		t.Fatalf("blank category should default, got %q", p.Category)
	}

	c := p.Clone()
	c.Name = "Other"
	if p.Name != "Pen" {
		t.Fatal("clone must not alias the original")
	}
}
