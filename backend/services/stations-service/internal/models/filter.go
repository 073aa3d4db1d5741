package models

// StationFilter is a compiled, request-scoped listing query.
type StationFilter struct {
	Status        string
	ConnectorType string
	MinPowerKW    *float64
	MaxPowerKW    *float64
	Page          int
	Limit         int
}

// Skip is the number of matching records preceding the requested page.
func (f StationFilter) Skip() int {
	return (f.Page - 1) * f.Limit
}

// StationPage is one page of a listing.
type StationPage struct {
	Items []Station `json:"stations"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
	Total int       `json:"total"`
	Limit int       `json:"limit"`
}
