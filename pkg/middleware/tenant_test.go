package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	lastHost     string
	lastOverride string
	result       string
}

func (f *fakeResolver) ResolveTenantID(ctx context.Context, host, override string) string {
	f.lastHost = host
	f.lastOverride = override
	return f.result
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"acme-tours.com", "acme-tours.com"},
		{"acme-tours.com:8080", "acme-tours.com"},
		{"WWW.Acme-Tours.COM", "acme-tours.com"},
		{"www.acme-tours.com:443", "acme-tours.com"},
		{"localhost:3000", "localhost"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeHost(tt.in))
		})
	}
}

func runTenantScope(t *testing.T, resolver TenantResolver, mutate func(*http.Request)) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var resolved string
	router := gin.New()
	router.Use(TenantScope(resolver))
	router.GET("/", func(c *gin.Context) {
		resolved = ResolvedTenant(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "www.acme-tours.com:8080"
	if mutate != nil {
		mutate(req)
	}
	router.ServeHTTP(httptest.NewRecorder(), req)
	return resolved
}

func TestTenantScope_ResolvesFromHost(t *testing.T) {
	resolver := &fakeResolver{result: "acme"}

	resolved := runTenantScope(t, resolver, nil)

	assert.Equal(t, "acme", resolved)
	assert.Equal(t, "acme-tours.com", resolver.lastHost)
	assert.Empty(t, resolver.lastOverride)
}

func TestTenantScope_HeaderOverride(t *testing.T) {
	resolver := &fakeResolver{result: "other"}

	resolved := runTenantScope(t, resolver, func(req *http.Request) {
		req.Header.Set(HeaderTenantOverride, "other")
	})

	assert.Equal(t, "other", resolved)
	assert.Equal(t, "other", resolver.lastOverride)
}

func TestTenantScope_CookieOverride(t *testing.T) {
	resolver := &fakeResolver{result: "other"}

	runTenantScope(t, resolver, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: CookieTenantOverride, Value: "other"})
	})

	assert.Equal(t, "other", resolver.lastOverride)
}

func TestTenantScope_HeaderWinsOverCookie(t *testing.T) {
	resolver := &fakeResolver{result: "header-tenant"}

	runTenantScope(t, resolver, func(req *http.Request) {
		req.Header.Set(HeaderTenantOverride, "header-tenant")
		req.AddCookie(&http.Cookie{Name: CookieTenantOverride, Value: "cookie-tenant"})
	})

	assert.Equal(t, "header-tenant", resolver.lastOverride)
}

func TestResolvedTenant_MissingScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, ResolvedTenant(c))
}
