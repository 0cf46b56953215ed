package dto

type ProductFilters struct {
	Category    string
	IsActive    *bool
	SearchQuery string // name or description
	SortBy      string // name, category, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
