package dto

import (
	"strings"
	"time"
)

// CreateDestinationRequest represents the request to create a destination
type CreateDestinationRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Country     string   `json:"country" binding:"max=100"`
	Description string   `json:"description" binding:"max=10000"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	Highlights  []string `json:"highlights"`
	IsFeatured  bool     `json:"is_featured"`
	IsPublished bool     `json:"is_published"`
	TenantID    string   `json:"-"` // Set from context
}

// Validate validates the CreateDestinationRequest
func (r *CreateDestinationRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Destination name is required"
	}
	return true, ""
}

// UpdateDestinationRequest represents the request to update a destination
type UpdateDestinationRequest struct {
	Name        string   `json:"name" binding:"omitempty,min=1,max=200"`
	Country     *string  `json:"country"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Highlights  []string `json:"highlights"`
	IsFeatured  *bool    `json:"is_featured"`
	IsPublished *bool    `json:"is_published"`
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	SortOrder   int    `json:"sort_order"`
	IsActive    bool   `json:"is_active"`
	TenantID    string `json:"-"` // Set from context
}

// Validate validates the CreateCategoryRequest
func (r *CreateCategoryRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Category name is required"
	}
	return true, ""
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name        string  `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

// CreateBlogRequest represents the request to create a blog post
type CreateBlogRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Excerpt     string   `json:"excerpt" binding:"max=1000"`
	Body        string   `json:"body" binding:"required"`
	Author      string   `json:"author" binding:"max=200"`
	CoverURL    string   `json:"cover_url" binding:"omitempty,url"`
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`
	TenantID    string   `json:"-"` // Set from context
}

// Validate validates the CreateBlogRequest
func (r *CreateBlogRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Title) == "" {
		return false, "Blog title is required"
	}
	if strings.TrimSpace(r.Body) == "" {
		return false, "Blog body is required"
	}
	return true, ""
}

// UpdateBlogRequest represents the request to update a blog post
type UpdateBlogRequest struct {
	Title       string   `json:"title" binding:"omitempty,min=1,max=200"`
	Excerpt     *string  `json:"excerpt"`
	Body        *string  `json:"body"`
	Author      *string  `json:"author"`
	CoverURL    *string  `json:"cover_url"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"is_published"`
}

// CreateAttractionRequest represents the request to create an attraction page
type CreateAttractionRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Heading     string `json:"heading" binding:"max=300"`
	Body        string `json:"body" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
	TenantID    string `json:"-"` // Set from context
}

// Validate validates the CreateAttractionRequest
func (r *CreateAttractionRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Title) == "" {
		return false, "Attraction title is required"
	}
	if strings.TrimSpace(r.Body) == "" {
		return false, "Attraction body is required"
	}
	return true, ""
}

// UpdateAttractionRequest represents the request to update an attraction page
type UpdateAttractionRequest struct {
	Title       string  `json:"title" binding:"omitempty,min=1,max=200"`
	Heading     *string `json:"heading"`
	Body        *string `json:"body"`
	ImageURL    *string `json:"image_url"`
	IsPublished *bool   `json:"is_published"`
}

// CreateDiscountRequest represents the request to create a discount code
type CreateDiscountRequest struct {
	Code       string     `json:"code" binding:"required,min=2,max=50"`
	Percentage float64    `json:"percentage" binding:"required,gt=0,lte=100"`
	MaxUses    int        `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	IsActive   bool       `json:"is_active"`
	TenantID   string     `json:"-"` // Set from context
}

// Validate validates the CreateDiscountRequest
func (r *CreateDiscountRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Code) == "" {
		return false, "Discount code is required"
	}
	if r.Percentage <= 0 || r.Percentage > 100 {
		return false, "Percentage must be between 0 and 100"
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidUntil.Before(*r.ValidFrom) {
		return false, "valid_until must be after valid_from"
	}
	return true, ""
}

// UpdateDiscountRequest represents the request to update a discount code
type UpdateDiscountRequest struct {
	Code       string     `json:"code" binding:"omitempty,min=2,max=50"`
	Percentage *float64   `json:"percentage" binding:"omitempty,gt=0,lte=100"`
	MaxUses    *int       `json:"max_uses" binding:"omitempty,min=0"`
	ValidFrom  *time.Time `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until"`
	IsActive   *bool      `json:"is_active"`
}

// ApplyDiscountRequest asks for a quote against a cart amount
type ApplyDiscountRequest struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DiscountQuote is the computed result of applying a code
type DiscountQuote struct {
	Code           string  `json:"code"`
	Percentage     float64 `json:"percentage"`
	OriginalAmount float64 `json:"original_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

// CreateReviewRequest represents the request to submit a tour review
type CreateReviewRequest struct {
	Author   string `json:"author" binding:"required,min=1,max=200"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title" binding:"max=200"`
	Body     string `json:"body" binding:"max=5000"`
	TenantID string `json:"-"` // Set from context
}

// Validate validates the CreateReviewRequest
func (r *CreateReviewRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Author) == "" {
		return false, "Review author is required"
	}
	if r.Rating < 1 || r.Rating > 5 {
		return false, "Rating must be between 1 and 5"
	}
	return true, ""
}

// CreateHeroRequest represents the request to create a hero configuration
type CreateHeroRequest struct {
	Headline string `json:"headline" binding:"required,min=1,max=300"`
	Subtitle string `json:"subtitle" binding:"max=500"`
	ImageURL string `json:"image_url" binding:"omitempty,url"`
	VideoURL string `json:"video_url" binding:"omitempty,url"`
	CTALabel string `json:"cta_label" binding:"max=100"`
	CTALink  string `json:"cta_link" binding:"max=500"`
	TenantID string `json:"-"` // Set from context
}

// Validate validates the CreateHeroRequest
func (r *CreateHeroRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Headline) == "" {
		return false, "Hero headline is required"
	}
	return true, ""
}

// UpdateHeroRequest represents the request to update a hero configuration
type UpdateHeroRequest struct {
	Headline string  `json:"headline" binding:"omitempty,min=1,max=300"`
	Subtitle *string `json:"subtitle"`
	ImageURL *string `json:"image_url"`
	VideoURL *string `json:"video_url"`
	CTALabel *string `json:"cta_label"`
	CTALink  *string `json:"cta_link"`
}

// ListQuery is the shared pagination query for content listings
type ListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
