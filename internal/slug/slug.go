// Package slug derives URL-safe slugs from human titles and enforces
// per-tenant uniqueness. Generation is pure; uniqueness is a best-effort
// pre-check. The compound (tenant_id, slug) unique index remains the
// source of truth and insert paths must still handle duplicate-key errors.
package slug

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultMaxAttempts caps the numeric-suffix loop before falling back to a
// timestamp suffix. Tunable; the value itself carries no meaning.
const DefaultMaxAttempts = 1000

// reserved lists route words that may never be used as a bare entity slug.
var reserved = map[string]struct{}{
	"admin":        {},
	"api":          {},
	"tours":        {},
	"destinations": {},
	"categories":   {},
	"blogs":        {},
	"attractions":  {},
	"reviews":      {},
	"search":       {},
	"cart":         {},
	"checkout":     {},
	"wishlist":     {},
	"login":        {},
	"signup":       {},
}

// reservedPrefix is prepended when a generated slug collides with a route word.
const reservedPrefix = "tour-"

var (
	stripRe     = regexp.MustCompile(`[^a-z0-9\s-]`)
	spaceRe     = regexp.MustCompile(`\s+`)
	multiDashRe = regexp.MustCompile(`-{2,}`)
)

// Generate derives a slug from a title: lowercase, characters outside
// [a-z0-9\s-] stripped, whitespace collapsed to single hyphens, repeated
// hyphens collapsed, edge hyphens trimmed. Non-ASCII letters are dropped,
// not transliterated: "Café Tour" becomes "caf-tour". Pure function.
func Generate(title string) string {
	s := strings.ToLower(title)
	s = stripRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = multiDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// IsReserved reports whether s is a route-reserved word.
func IsReserved(s string) bool {
	_, ok := reserved[s]
	return ok
}

// GuardReserved prefixes base when it matches a reserved route word, so a
// tour titled "Admin" can never shadow the /admin route.
func GuardReserved(base string) string {
	if IsReserved(base) {
		return reservedPrefix + base
	}
	return base
}

// ExistsFunc reports whether a slug is already taken within a tenant's
// namespace. Implementations exclude the record being updated, if any.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Enforcer makes a base slug unique within one tenant's namespace.
type Enforcer struct {
	MaxAttempts int
	// now is injectable for the timestamp-suffix termination path.
	now func() time.Time
}

// NewEnforcer returns an Enforcer with the default attempt ceiling.
func NewEnforcer() *Enforcer {
	return &Enforcer{MaxAttempts: DefaultMaxAttempts, now: time.Now}
}

// EnsureUnique returns base if free, otherwise base-1, base-2, ... up to the
// attempt ceiling, then base-<unix-nano> to guarantee termination. The check
// is not atomic against concurrent creations; callers must treat a
// duplicate-key error at insert time as the real verdict and retry once.
func (e *Enforcer) EnsureUnique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	base = GuardReserved(base)
	if base == "" {
		base = "untitled"
	}

	taken, err := exists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	max := e.MaxAttempts
	if max <= 0 {
		max = DefaultMaxAttempts
	}
	for i := 1; i <= max; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	now := e.now
	if now == nil {
		now = time.Now
	}
	return fmt.Sprintf("%s-%d", base, now().UnixNano()), nil
}
