package dto

type IngredientInput struct {
	Name     string
	Quantity float64
	Unit     string
	MinStock float64
}

type AdjustQuantityInput struct {
	ID    string
	Delta float64
}
