package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tripova/tourbase/pkg/response"
)

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidToken      = errors.New("invalid token")
)

// Context keys for authenticated admin information
const (
	ContextKeyUserID      = "user_id"
	ContextKeyRole        = "role"
	ContextKeyAdminTenant = "admin_tenant_id"
)

// Admin roles
const (
	RoleOperator    = "operator"     // cross-tenant platform operator
	RoleTenantAdmin = "tenant_admin" // scoped to their own tenant
)

// JWTConfig holds configuration for JWT middleware
type JWTConfig struct {
	Secret string
	// SkipPaths lists paths exempt from token validation
	SkipPaths []string
}

// JWTMiddleware validates admin bearer tokens and injects user/role/tenant
// claims into the gin context.
func JWTMiddleware(config *JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range config.SkipPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("MISSING_TOKEN", "Authorization header is required"))
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid authorization header format"))
			return
		}
		tokenString := authHeader[len(bearerPrefix):]
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Token is empty"))
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(config.Secret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("TOKEN_EXPIRED", "Access token has expired"))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid access token"))
			return
		}
		if !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid access token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Invalid token claims"))
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Missing user_id in token"))
			return
		}

		role, _ := claims["role"].(string)
		tenantID, _ := claims["tenant_id"].(string)

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyRole, role)
		c.Set(ContextKeyAdminTenant, tenantID)

		c.Next()
	}
}

// RequireRole aborts unless the authenticated user has one of the given roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextKeyRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("UNAUTHORIZED", "User not authenticated"))
			return
		}

		roleStr, ok := userRole.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.InternalError("Invalid role type"))
			return
		}

		for _, r := range roles {
			if roleStr == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, response.Error("FORBIDDEN", "Insufficient permissions"))
	}
}

// RequireTenantClaim aborts when a tenant_admin's token names a different
// tenant than the one the request resolved to. Operators are cross-tenant
// and pass through.
func RequireTenantClaim() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := GetRole(c)
		if role != RoleTenantAdmin {
			c.Next()
			return
		}

		claimed, ok := GetAdminTenant(c)
		if !ok || claimed == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("FORBIDDEN", "Token carries no tenant"))
			return
		}
		if claimed != ResolvedTenant(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error("FORBIDDEN", "Token is scoped to another tenant"))
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from gin context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// GetRole extracts the authenticated role from gin context
func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(ContextKeyRole)
	if !exists {
		return "", false
	}
	r, ok := role.(string)
	return r, ok
}

// GetAdminTenant extracts the token's tenant claim from gin context
func GetAdminTenant(c *gin.Context) (string, bool) {
	tenantID, exists := c.Get(ContextKeyAdminTenant)
	if !exists {
		return "", false
	}
	t, ok := tenantID.(string)
	return t, ok
}
