package domain

import "time"

// Destination represents a place tours operate in. Default-tenant
// destinations serve as shared fallback content for all tenants.
type Destination struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Country     string     `json:"country"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Highlights  []string   `json:"highlights,omitempty"`
	IsFeatured  bool       `json:"is_featured"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}
