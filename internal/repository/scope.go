package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tripova/tourbase/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for a unique index violation. The
// compound (tenant_id, natural key) indexes are the real uniqueness
// guarantee; the slug pre-check loop is only an optimization, so every
// insert path funnels through IsDuplicateKey.
const pgUniqueViolation = "23505"

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// requireTenant rejects reads and writes that lost their tenant scope.
// An empty tenant id here is a programming error upstream, never user input.
func requireTenant(tenantID string) error {
	if tenantID == "" {
		return domain.ErrTenantScopeRequired
	}
	return nil
}

// fallbackOrder ranks exact-tenant rows above default-tenant rows in scoped
// lookups, so the tenant-owned record always wins when both exist. Appended
// to queries that bind (natural key, tenant id, default tenant id) as
// ($1, $2, $3); deterministic regardless of index order.
const fallbackOrder = ` ORDER BY CASE WHEN tenant_id = $2 THEN 0 ELSE 1 END LIMIT 1`
