package slug

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"simple title", "Amsterdam Canal Cruise", "amsterdam-canal-cruise"},
		{"leading number kept", "1 Hour Amsterdam Canal Cruise", "1-hour-amsterdam-canal-cruise"},
		{"accents dropped not transliterated", "Café Tour — Déjà Vu!", "caf-tour-dj-vu"},
		{"punctuation stripped", "Best. Tour. Ever!!!", "best-tour-ever"},
		{"repeated whitespace collapsed", "Wine   &   Cheese\tTasting", "wine-cheese-tasting"},
		{"existing hyphens kept", "Two-Day Safari", "two-day-safari"},
		{"repeated hyphens collapsed", "A -- B", "a-b"},
		{"edge hyphens trimmed", "- Trimmed -", "trimmed"},
		{"all symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.title))
		})
	}
}

func TestGuardReserved(t *testing.T) {
	assert.Equal(t, "tour-admin", GuardReserved("admin"))
	assert.Equal(t, "tour-api", GuardReserved("api"))
	assert.Equal(t, "paris", GuardReserved("paris"))
	// only exact matches are guarded
	assert.Equal(t, "administration", GuardReserved("administration"))
}

func neverExists(ctx context.Context, s string) (bool, error) {
	return false, nil
}

func takenSet(taken ...string) ExistsFunc {
	set := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		set[s] = struct{}{}
	}
	return func(ctx context.Context, s string) (bool, error) {
		_, ok := set[s]
		return ok, nil
	}
}

func TestEnsureUnique_BaseFree(t *testing.T) {
	e := NewEnforcer()

	got, err := e.EnsureUnique(context.Background(), "canal-cruise", neverExists)
	require.NoError(t, err)
	assert.Equal(t, "canal-cruise", got)
}

func TestEnsureUnique_NumericSuffix(t *testing.T) {
	e := NewEnforcer()

	got, err := e.EnsureUnique(context.Background(), "canal-cruise",
		takenSet("canal-cruise", "canal-cruise-1", "canal-cruise-2"))
	require.NoError(t, err)
	assert.Equal(t, "canal-cruise-3", got)
}

func TestEnsureUnique_ReservedWordGuarded(t *testing.T) {
	e := NewEnforcer()

	got, err := e.EnsureUnique(context.Background(), "admin", neverExists)
	require.NoError(t, err)
	assert.Equal(t, "tour-admin", got)
}

func TestEnsureUnique_EmptyBase(t *testing.T) {
	e := NewEnforcer()

	got, err := e.EnsureUnique(context.Background(), "", neverExists)
	require.NoError(t, err)
	assert.Equal(t, "untitled", got)
}

func TestEnsureUnique_TimestampFallback(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := &Enforcer{MaxAttempts: 3, now: func() time.Time { return fixed }}

	everything := func(ctx context.Context, s string) (bool, error) {
		return true, nil
	}

	got, err := e.EnsureUnique(context.Background(), "canal-cruise", everything)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("canal-cruise-%d", fixed.UnixNano()), got)
}

func TestEnsureUnique_PropagatesError(t *testing.T) {
	e := NewEnforcer()

	failing := func(ctx context.Context, s string) (bool, error) {
		return false, fmt.Errorf("connection refused")
	}

	_, err := e.EnsureUnique(context.Background(), "canal-cruise", failing)
	assert.Error(t, err)
}
