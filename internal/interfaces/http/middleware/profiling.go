package middleware

import (
	"context"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Profiling attaches route, method and tenant labels to the CPU samples taken
// while the rest of the chain runs. It must run after Identity for the tenant
// label to be set; unmatched routes are not labelled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}
		tenant := ""
		if id := GetTenantID(c); id != uuid.Nil {
			tenant = id.String()
		}
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method, tenant)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
