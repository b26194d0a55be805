package models

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"` // unique, case-insensitive
	Description string    `json:"description"`
	Color       string    `json:"color"` // #RRGGBB
	CreatedAt   time.Time `json:"createdAt"`
}

type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (c *Category) Summary() *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.ID, Name: c.Name, Color: c.Color}
}
