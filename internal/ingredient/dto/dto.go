package dto

type IngredientFilters struct {
	LowStock bool
}
