package middleware

import (
	"net/http"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity context and header keys
const (
	TenantIDKey     = "tenant_id"
	UserIDKey       = "user_id"
	TenantHeaderKey = "X-Tenant-ID"
	UserHeaderKey   = "X-User-ID"
)

// Identity resolves the tenant and the acting user of a request.
// JWT claims win over the X-Tenant-ID and X-User-ID headers. A missing or
// malformed tenant is rejected; a missing user falls back to the tenant id,
// which makes the tenant itself the owner of numbered documents.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantRaw := c.GetString(JWTTenantIDKey)
		if tenantRaw == "" {
			tenantRaw = c.GetHeader(TenantHeaderKey)
		}
		if tenantRaw == "" {
			abortIdentity(c, "Tenant identification required")
			return
		}
		tenantID, err := uuid.Parse(tenantRaw)
		if err != nil {
			abortIdentity(c, "Invalid tenant ID format")
			return
		}

		userID := tenantID
		userRaw := c.GetString(JWTUserIDKey)
		if userRaw == "" {
			userRaw = c.GetHeader(UserHeaderKey)
		}
		if userRaw != "" {
			if userID, err = uuid.Parse(userRaw); err != nil {
				abortIdentity(c, "Invalid user ID format")
				return
			}
		}

		c.Set(TenantIDKey, tenantID)
		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(logger.WithTenant(c.Request.Context(), tenantID))
		c.Next()
	}
}

func abortIdentity(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeTenantRequired, message, GetRequestID(c)))
}

// GetTenantID returns the tenant resolved by Identity, or uuid.Nil
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserID returns the user resolved by Identity, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
