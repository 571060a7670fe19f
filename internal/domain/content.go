package domain

import "time"

// Category groups tours. Its natural key is the name, unique per tenant.
type Category struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Blog is a tenant-scoped article with a per-tenant unique slug.
type Blog struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Author      string     `json:"author,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// AttractionPage is a long-form landing page for a single attraction.
type AttractionPage struct {
	ID          string     `json:"id"`
	TenantID    string     `json:"tenant_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Heading     string     `json:"heading,omitempty"`
	Body        string     `json:"body"`
	ImageURL    string     `json:"image_url,omitempty"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Review is always scoped to the tenant that owns the reviewed tour.
// Reviews have no natural key and never participate in fallback resolution.
type Review struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	TourID     string    `json:"tour_id"`
	Author     string    `json:"author"`
	Rating     int       `json:"rating"` // 1..5
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Discount is a promo code; the code is unique per tenant.
type Discount struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Code       string     `json:"code"`
	Percentage float64    `json:"percentage"`
	MaxUses    int        `json:"max_uses"` // 0 = unlimited
	UsedCount  int        `json:"used_count"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsRedeemable reports whether the discount can be applied at the given time.
func (d *Discount) IsRedeemable(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.MaxUses > 0 && d.UsedCount >= d.MaxUses {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	return true
}

// HeroSettings configures the landing page hero section. At most one row per
// tenant may be active at a time; activation deactivates the siblings.
type HeroSettings struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Headline  string    `json:"headline"`
	Subtitle  string    `json:"subtitle,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	VideoURL  string    `json:"video_url,omitempty"`
	CTALabel  string    `json:"cta_label,omitempty"`
	CTALink   string    `json:"cta_link,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
