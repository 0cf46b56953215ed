package dto

import (
	"github.com/donarib/storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name              string
	Category          model.ProductCategory
	ImageURL          string
	PriceSimple       decimal.Decimal
	PriceDoble        decimal.Decimal
	PriceTriple       decimal.Decimal
	Price             decimal.Decimal
	Description       string
	DescriptionSimple string
	DescriptionDoble  string
	DescriptionTriple string
	IsActive          bool
}

type UpdateProductInput struct {
	ID string
	CreateProductInput
}
