package dto

import "strings"

// CreateTourRequest represents the request to create a new tour
type CreateTourRequest struct {
	Title            string   `json:"title" binding:"required,min=1,max=200"`
	DestinationID    string   `json:"destination_id"`
	CategoryID       string   `json:"category_id"`
	Description      string   `json:"description" binding:"max=10000"`
	ShortDescription string   `json:"short_description" binding:"max=500"`
	ImageURL         string   `json:"image_url" binding:"omitempty,url"`
	Gallery          []string `json:"gallery"`
	DurationMinutes  int      `json:"duration_minutes" binding:"omitempty,min=0"`
	Price            float64  `json:"price" binding:"required,gt=0"`
	DiscountPrice    *float64 `json:"discount_price" binding:"omitempty,gt=0"`
	Currency         string   `json:"currency" binding:"omitempty,len=3"`
	MaxGroupSize     int      `json:"max_group_size" binding:"omitempty,min=0"`
	IsFeatured       bool     `json:"is_featured"`
	IsPublished      bool     `json:"is_published"`
	TenantID         string   `json:"-"` // Set from context
}

// Validate validates the CreateTourRequest
func (r *CreateTourRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Title) == "" {
		return false, "Tour title is required"
	}
	if r.Price <= 0 {
		return false, "Tour price must be positive"
	}
	if r.DiscountPrice != nil && *r.DiscountPrice >= r.Price {
		return false, "Discount price must be below the regular price"
	}
	return true, ""
}

// UpdateTourRequest represents the request to update a tour. A tenant id in
// the payload is rejected upstream; ownership never changes on update.
type UpdateTourRequest struct {
	Title            string   `json:"title" binding:"omitempty,min=1,max=200"`
	DestinationID    *string  `json:"destination_id"`
	CategoryID       *string  `json:"category_id"`
	Description      *string  `json:"description" binding:"omitempty,max=10000"`
	ShortDescription *string  `json:"short_description" binding:"omitempty,max=500"`
	ImageURL         *string  `json:"image_url"`
	Gallery          []string `json:"gallery"`
	DurationMinutes  *int     `json:"duration_minutes" binding:"omitempty,min=0"`
	Price            *float64 `json:"price" binding:"omitempty,gt=0"`
	DiscountPrice    *float64 `json:"discount_price"`
	Currency         string   `json:"currency" binding:"omitempty,len=3"`
	MaxGroupSize     *int     `json:"max_group_size" binding:"omitempty,min=0"`
	IsFeatured       *bool    `json:"is_featured"`
	IsPublished      *bool    `json:"is_published"`
}

// TourListQuery narrows tour listings
type TourListQuery struct {
	DestinationID string `form:"destination_id"`
	CategoryID    string `form:"category_id"`
	Featured      bool   `form:"featured"`
	Search        string `form:"q"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}
