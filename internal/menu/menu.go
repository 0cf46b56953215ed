package menu

import (
	"github.com/donarib/storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type Option struct {
	Size        model.Size      `json:"size"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ImageURL string   `json:"image_url"`
	Options  []Option `json:"options"`
}

type Menu struct {
	Burgers []Item `json:"burgers"`
	Combos  []Item `json:"combos"`
	Drinks  []Item `json:"drinks"`
}

// Build groups active products by category, keeping the given order.
// Burgers list all three tiers; combos and drinks have a single option.
func Build(products []model.Product) *Menu {
	m := &Menu{Burgers: []Item{}, Combos: []Item{}, Drinks: []Item{}}
	for i := range products {
		p := &products[i]
		if !p.IsActive {
			continue
		}

		item := Item{ID: p.ID, Name: p.Name, ImageURL: p.ImageURL}
		for _, size := range p.Sizes() {
			price, _ := p.PriceFor(size)
			item.Options = append(item.Options, Option{
				Size:        size,
				Price:       price,
				Description: p.DescriptionFor(size),
			})
		}

		switch p.Category {
		case model.CategoryBurger:
			m.Burgers = append(m.Burgers, item)
		case model.CategoryCombo:
			m.Combos = append(m.Combos, item)
		case model.CategoryDrink:
			m.Drinks = append(m.Drinks, item)
		}
	}
	return m
}
