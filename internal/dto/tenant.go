package dto

import (
	"strings"

	"github.com/tripova/tourbase/internal/domain"
)

// CreateTenantRequest represents the request to register a new tenant site
type CreateTenantRequest struct {
	Name         string            `json:"name" binding:"required,min=1,max=200"`
	Slug         string            `json:"slug" binding:"omitempty,max=100"`
	Domain       string            `json:"domain" binding:"required,hostname_rfc1123"`
	AltDomains   []string          `json:"alt_domains"`
	Branding     map[string]string `json:"branding"`
	ContactEmail string            `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string            `json:"contact_phone"`
	Currency     string            `json:"currency" binding:"omitempty,len=3"`
	FeatureFlags map[string]bool   `json:"feature_flags"`
	IsActive     bool              `json:"is_active"`
}

// Validate validates the CreateTenantRequest
func (r *CreateTenantRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.Name) == "" {
		return false, "Tenant name is required"
	}
	if strings.TrimSpace(r.Domain) == "" {
		return false, "Tenant domain is required"
	}
	if strings.Contains(r.Domain, "/") {
		return false, "Domain must be a bare hostname"
	}
	return true, ""
}

// UpdateTenantRequest represents the request to update a tenant. The default
// flag is deliberately absent; defaults change only through the promote
// operation.
type UpdateTenantRequest struct {
	Name         string            `json:"name" binding:"omitempty,min=1,max=200"`
	Domain       string            `json:"domain" binding:"omitempty,hostname_rfc1123"`
	AltDomains   []string          `json:"alt_domains"`
	Branding     map[string]string `json:"branding"`
	ContactEmail string            `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string            `json:"contact_phone"`
	Currency     string            `json:"currency" binding:"omitempty,len=3"`
	FeatureFlags map[string]bool   `json:"feature_flags"`
	IsActive     *bool             `json:"is_active"`
}

// Validate validates the UpdateTenantRequest
func (r *UpdateTenantRequest) Validate() (bool, string) {
	if r.Name == "" && r.Domain == "" && r.AltDomains == nil && r.Branding == nil &&
		r.ContactEmail == "" && r.ContactPhone == "" && r.Currency == "" &&
		r.FeatureFlags == nil && r.IsActive == nil {
		return false, "At least one field must be provided for update"
	}
	if r.Domain != "" && strings.Contains(r.Domain, "/") {
		return false, "Domain must be a bare hostname"
	}
	return true, ""
}

// TenantListFilter narrows tenant listings
type TenantListFilter struct {
	ActiveOnly bool   `form:"active_only"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// PublicTenantConfig is the storefront-safe view of a tenant. Secrets and
// operational fields never appear here.
type PublicTenantConfig struct {
	TenantID     string            `json:"tenant_id"`
	Name         string            `json:"name"`
	Branding     map[string]string `json:"branding"`
	Currency     string            `json:"currency"`
	ContactEmail string            `json:"contact_email,omitempty"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	FeatureFlags map[string]bool   `json:"feature_flags"`
}

// NewPublicTenantConfig projects a tenant onto its public view
func NewPublicTenantConfig(t *domain.Tenant) *PublicTenantConfig {
	return &PublicTenantConfig{
		TenantID:     t.ID,
		Name:         t.Name,
		Branding:     t.Branding,
		Currency:     t.Currency,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		FeatureFlags: t.FeatureFlags,
	}
}
