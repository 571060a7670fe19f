package domain

import "errors"

var (
	// ErrNotFound is the normal miss outcome: neither a tenant-owned nor a
	// default-tenant record exists for the requested natural key.
	ErrNotFound = errors.New("record not found")

	// ErrTenantScopeRequired is returned when a read or write is attempted
	// without a tenant id. This is a programming error, not user input.
	ErrTenantScopeRequired = errors.New("tenant scope required")

	// ErrTenantImmutable is returned when an update attempts to move a
	// record to a different tenant.
	ErrTenantImmutable = errors.New("tenant id is immutable after creation")

	// ErrSlugConflict is returned when an insert or update collides with the
	// compound (tenant_id, natural key) unique index even after retrying
	// slug generation.
	ErrSlugConflict = errors.New("slug already in use for this tenant")

	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantAlreadyExists = errors.New("tenant with this id or domain already exists")
)
