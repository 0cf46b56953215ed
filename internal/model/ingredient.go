package model

type Ingredient struct {
	BaseModel
	Name     string  `db:"name" json:"name"`
	Quantity float64 `db:"quantity" json:"quantity"`
	Unit     string  `db:"unit" json:"unit"`
	MinStock float64 `db:"min_stock" json:"min_stock"`
}

func (i *Ingredient) IsLowStock() bool {
	return i.Quantity <= i.MinStock
}
