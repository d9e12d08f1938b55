package model

import "time"

// Product is a catalog entry. Products are seeded externally and read-only to the API.
type Product struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	Category             string              `json:"category"`
	Subcategory          string              `json:"subcategory"`
	Description          string              `json:"description"`
	BasePrice            float64             `json:"base_price"`
	Images               []string            `json:"images"`
	CustomizationOptions map[string][]string `json:"customization_options"`
	CreatedAt            time.Time           `json:"created_at"`
}
