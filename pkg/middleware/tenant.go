package middleware

import (
	"context"
	"net"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tripova/tourbase/pkg/logger"
)

const (
	// HeaderTenantOverride lets admin tooling pin a tenant regardless of host.
	HeaderTenantOverride = "X-Tenant-ID"
	// CookieTenantOverride is the cookie equivalent used by the admin UI.
	CookieTenantOverride = "tenant_override"

	// ContextKeyResolvedTenant is the gin context key for the resolved tenant id.
	ContextKeyResolvedTenant = "resolved_tenant_id"
)

// TenantResolver maps a normalized hostname (plus an optional explicit
// override) to a tenant id. Implementations must always return a usable id,
// never an error: unknown hosts resolve to the default tenant.
type TenantResolver interface {
	ResolveTenantID(ctx context.Context, host, override string) string
}

// NormalizeHost strips the port and a leading "www." and lowercases the host.
func NormalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

// TenantScope resolves the inbound request's tenant and stores the id in both
// the gin context and the request context (for log enrichment). Every request
// gets a tenant id; resolution never aborts the request.
func TenantScope(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		host := NormalizeHost(c.Request.Host)

		override := c.GetHeader(HeaderTenantOverride)
		if override == "" {
			if cookie, err := c.Cookie(CookieTenantOverride); err == nil {
				override = cookie
			}
		}

		tenantID := resolver.ResolveTenantID(c.Request.Context(), host, override)

		c.Set(ContextKeyResolvedTenant, tenantID)
		ctx := context.WithValue(c.Request.Context(), logger.TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ResolvedTenant returns the tenant id placed in the gin context by
// TenantScope. The empty-string fallback never happens on routed requests;
// it exists so direct handler tests fail loudly instead of silently scoping
// to a wrong tenant.
func ResolvedTenant(c *gin.Context) string {
	if v, ok := c.Get(ContextKeyResolvedTenant); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
