package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrSizeNotOffered = errors.New("size not offered for this product")

type ProductCategory string

const (
	CategoryBurger ProductCategory = "burger"
	CategoryCombo  ProductCategory = "combo"
	CategoryDrink  ProductCategory = "drink"
)

func (c ProductCategory) Valid() bool {
	switch c {
	case CategoryBurger, CategoryCombo, CategoryDrink:
		return true
	}
	return false
}

// Size is the label stored on order lines. It doubles as the burger tier and
// as the category marker for combos and drinks.
type Size string

const (
	SizeSimple Size = "Simple"
	SizeDoble  Size = "Doble"
	SizeTriple Size = "Triple"
	SizeBebida Size = "Bebida"
	SizeCombo  Size = "Combo"
)

func (s Size) Valid() bool {
	switch s {
	case SizeSimple, SizeDoble, SizeTriple, SizeBebida, SizeCombo:
		return true
	}
	return false
}

type Product struct {
	BaseModel
	Name              string          `db:"name" json:"name"`
	Category          ProductCategory `db:"category" json:"category"`
	ImageURL          string          `db:"image_url" json:"image_url"`
	PriceSimple       decimal.Decimal `db:"price_simple" json:"price_simple"`
	PriceDoble        decimal.Decimal `db:"price_doble" json:"price_doble"`
	PriceTriple       decimal.Decimal `db:"price_triple" json:"price_triple"`
	Price             decimal.Decimal `db:"price" json:"price"`
	Description       string          `db:"description" json:"description"`
	DescriptionSimple string          `db:"description_simple" json:"description_simple"`
	DescriptionDoble  string          `db:"description_doble" json:"description_doble"`
	DescriptionTriple string          `db:"description_triple" json:"description_triple"`
	IsActive          bool            `db:"is_active" json:"active"`
}

// Sizes lists the labels a product can be ordered in.
func (p *Product) Sizes() []Size {
	switch p.Category {
	case CategoryBurger:
		return []Size{SizeSimple, SizeDoble, SizeTriple}
	case CategoryCombo:
		return []Size{SizeCombo}
	case CategoryDrink:
		return []Size{SizeBebida}
	}
	return nil
}

func (p *Product) PriceFor(size Size) (decimal.Decimal, error) {
	switch {
	case p.Category == CategoryBurger && size == SizeSimple:
		return p.PriceSimple, nil
	case p.Category == CategoryBurger && size == SizeDoble:
		return p.PriceDoble, nil
	case p.Category == CategoryBurger && size == SizeTriple:
		return p.PriceTriple, nil
	case p.Category == CategoryCombo && size == SizeCombo,
		p.Category == CategoryDrink && size == SizeBebida:
		return p.Price, nil
	}
	return decimal.Zero, ErrSizeNotOffered
}

// DescriptionFor returns the tier description, falling back to the general one.
func (p *Product) DescriptionFor(size Size) string {
	var d string
	switch size {
	case SizeSimple:
		d = p.DescriptionSimple
	case SizeDoble:
		d = p.DescriptionDoble
	case SizeTriple:
		d = p.DescriptionTriple
	}
	if d == "" {
		return p.Description
	}
	return d
}
