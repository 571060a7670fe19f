package domain

import "time"

// FallbackTenantID is the hard-coded tenant id used when no default tenant
// row exists at all. Host resolution must always produce a usable id.
const FallbackTenantID = "default"

// Tenant represents a brand/customer owning a partition of the catalog
type Tenant struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Domain       string            `json:"domain,omitempty"`
	AltDomains   []string          `json:"alt_domains,omitempty"`
	Branding     map[string]string `json:"branding,omitempty"`
	ContactEmail string            `json:"contact_email,omitempty"`
	ContactPhone string            `json:"contact_phone,omitempty"`
	Currency     string            `json:"currency"`
	FeatureFlags map[string]bool   `json:"feature_flags,omitempty"`
	// Secrets holds integration credentials (payment keys, tokens).
	// Never exposed through the public config projection.
	Secrets   map[string]string `json:"-"`
	IsActive  bool              `json:"is_active"`
	IsDefault bool              `json:"is_default"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt *time.Time        `json:"deleted_at,omitempty"`
}

// MatchesHost reports whether host equals the tenant's primary domain or
// any of its alternate domains. Host must already be normalized.
func (t *Tenant) MatchesHost(host string) bool {
	if t.Domain != "" && t.Domain == host {
		return true
	}
	for _, d := range t.AltDomains {
		if d == host {
			return true
		}
	}
	return false
}
