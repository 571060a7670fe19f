package middleware

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditAction represents the type of admin action being audited
type AuditAction string

const (
	AuditActionCreate   AuditAction = "create"
	AuditActionUpdate   AuditAction = "update"
	AuditActionDelete   AuditAction = "delete"
	AuditActionActivate AuditAction = "activate"
	AuditActionView     AuditAction = "view"
)

// AuditEntry represents a single audit log row. TenantID is always the
// tenant whose content was touched, so cross-tenant operator actions stay
// attributable per partition.
type AuditEntry struct {
	ID           string      `json:"id"`
	TenantID     *string     `json:"tenant_id,omitempty"`
	UserID       *string     `json:"user_id,omitempty"`
	UserRole     string      `json:"user_role,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   *string     `json:"resource_id,omitempty"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	StatusCode   int         `json:"status_code"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditConfig holds configuration for the audit middleware
type AuditConfig struct {
	// DB is the PostgreSQL connection pool for storing audit logs
	DB *pgxpool.Pool
	// BufferSize is the size of the async audit buffer (default: 1000)
	BufferSize int
	// FlushInterval is how often to flush the buffer (default: 5 seconds)
	FlushInterval time.Duration
	// BatchSize is the maximum number of entries per flush (default: 100)
	BatchSize int
	// SkipPaths lists paths excluded from auditing
	SkipPaths []string
	// SkipMethods lists HTTP methods excluded (default: GET, HEAD, OPTIONS)
	SkipMethods []string
}

// DefaultAuditConfig returns default configuration
func DefaultAuditConfig(db *pgxpool.Pool) *AuditConfig {
	return &AuditConfig{
		DB:            db,
		BufferSize:    1000,
		FlushInterval: 5 * time.Second,
		BatchSize:     100,
		SkipPaths:     []string{"/health", "/ready"},
		SkipMethods:   []string{"GET", "HEAD", "OPTIONS"},
	}
}

// AuditLogger buffers audit entries and writes them asynchronously so admin
// requests never block on the audit trail.
type AuditLogger struct {
	config    *AuditConfig
	buffer    chan *AuditEntry
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	// For testing: collect entries instead of writing to DB
	testMode    bool
	testEntries []*AuditEntry
	testMu      sync.Mutex
}

// NewAuditLogger creates a new audit logger and starts its worker
func NewAuditLogger(config *AuditConfig) *AuditLogger {
	if config.BufferSize <= 0 {
		config.BufferSize = 1000
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	al := &AuditLogger{
		config: config,
		buffer: make(chan *AuditEntry, config.BufferSize),
		ctx:    ctx,
		cancel: cancel,
	}

	al.wg.Add(1)
	go al.worker()
	return al
}

// Log adds an entry to the buffer without blocking; entries are dropped when
// the buffer is full rather than stalling the request
func (al *AuditLogger) Log(entry *AuditEntry) {
	select {
	case al.buffer <- entry:
	default:
	}
}

// Close flushes pending entries and stops the worker
func (al *AuditLogger) Close() error {
	al.closeOnce.Do(func() {
		al.cancel()
		close(al.buffer)
		al.wg.Wait()
	})
	return nil
}

// SetTestMode collects entries in memory instead of writing to the database
func (al *AuditLogger) SetTestMode(enabled bool) {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	al.testMode = enabled
	if enabled {
		al.testEntries = make([]*AuditEntry, 0)
	}
}

// TestEntries returns the entries collected in test mode
func (al *AuditLogger) TestEntries() []*AuditEntry {
	al.testMu.Lock()
	defer al.testMu.Unlock()
	result := make([]*AuditEntry, len(al.testEntries))
	copy(result, al.testEntries)
	return result
}

func (al *AuditLogger) worker() {
	defer al.wg.Done()

	ticker := time.NewTicker(al.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]*AuditEntry, 0, al.config.BatchSize)

	for {
		select {
		case entry, ok := <-al.buffer:
			if !ok {
				al.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= al.config.BatchSize {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				al.flush(batch)
				batch = make([]*AuditEntry, 0, al.config.BatchSize)
			}
		case <-al.ctx.Done():
			al.flush(batch)
			return
		}
	}
}

func (al *AuditLogger) flush(entries []*AuditEntry) {
	if len(entries) == 0 {
		return
	}

	al.testMu.Lock()
	if al.testMode {
		al.testEntries = append(al.testEntries, entries...)
		al.testMu.Unlock()
		return
	}
	al.testMu.Unlock()

	if al.config.DB == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	query := `
		INSERT INTO audit_logs (
			id, tenant_id, user_id, user_role, action,
			resource_type, resource_id, ip_address, user_agent,
			request_id, status_code, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, entry := range entries {
		// Audit writes never fail the application; a lost entry beats a
		// blocked request.
		_, _ = al.config.DB.Exec(ctx, query,
			entry.ID, entry.TenantID, entry.UserID, entry.UserRole, string(entry.Action),
			entry.ResourceType, entry.ResourceID, entry.IPAddress, entry.UserAgent,
			entry.RequestID, entry.StatusCode, entry.CreatedAt,
		)
	}
}

// defaultActionMapper maps HTTP method and path to an audit action
func defaultActionMapper(method, path string) AuditAction {
	if strings.HasSuffix(path, "/activate") || strings.HasSuffix(path, "/default") {
		return AuditActionActivate
	}
	switch method {
	case "POST":
		return AuditActionCreate
	case "PUT", "PATCH":
		return AuditActionUpdate
	case "DELETE":
		return AuditActionDelete
	default:
		return AuditActionView
	}
}

// defaultResourceExtractor derives (resourceType, resourceID) from an admin
// path like /admin/v1/tours/123.
func defaultResourceExtractor(path string) (string, string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	// skip the /admin/v1 prefix when present
	for len(parts) > 0 && (parts[0] == "admin" || parts[0] == "api" || strings.HasPrefix(parts[0], "v")) {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "", ""
	}
	resourceType := strings.TrimSuffix(parts[0], "s")
	if len(parts) > 1 {
		return resourceType, parts[1]
	}
	return resourceType, ""
}

// Audit records admin mutations. The entry's tenant id is the tenant
// resolved for the request, which for operator tooling is the tenant whose
// content is being edited (via the override header).
func Audit(auditLogger *AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range auditLogger.config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}
		for _, method := range auditLogger.config.SkipMethods {
			if c.Request.Method == method {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		entry := &AuditEntry{
			ID:         uuid.New().String(),
			StatusCode: c.Writer.Status(),
			CreatedAt:  start,
		}

		if userID, ok := GetUserID(c); ok && userID != "" {
			entry.UserID = &userID
		}
		if role, ok := GetRole(c); ok {
			entry.UserRole = role
		}
		if tenantID := ResolvedTenant(c); tenantID != "" {
			entry.TenantID = &tenantID
		}

		entry.Action = defaultActionMapper(c.Request.Method, c.Request.URL.Path)
		resourceType, resourceID := defaultResourceExtractor(c.Request.URL.Path)
		entry.ResourceType = resourceType
		if resourceID != "" {
			entry.ResourceID = &resourceID
		}

		entry.IPAddress = clientIP(c)
		entry.UserAgent = c.GetHeader("User-Agent")
		entry.RequestID = c.GetHeader("X-Request-ID")

		auditLogger.Log(entry)
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		if idx := strings.Index(ip, ","); idx > 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return ip
	}
	return c.Request.RemoteAddr
}
