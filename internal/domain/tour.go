package domain

import "time"

// Tour represents a bookable tour or activity owned by a single tenant.
// Slug is unique within the owning tenant, never globally.
type Tour struct {
	ID               string     `json:"id"`
	TenantID         string     `json:"tenant_id"`
	DestinationID    *string    `json:"destination_id,omitempty"`
	CategoryID       *string    `json:"category_id,omitempty"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	ImageURL         string     `json:"image_url"`
	Gallery          []string   `json:"gallery"`
	DurationMinutes  int        `json:"duration_minutes"`
	Price            float64    `json:"price"`
	DiscountPrice    *float64   `json:"discount_price,omitempty"`
	Currency         string     `json:"currency"`
	MaxGroupSize     int        `json:"max_group_size"`
	Rating           float64    `json:"rating"`
	ReviewCount      int        `json:"review_count"`
	IsFeatured       bool       `json:"is_featured"`
	IsPublished      bool       `json:"is_published"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}
