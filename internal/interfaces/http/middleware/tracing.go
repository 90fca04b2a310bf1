// Package middleware provides the HTTP middleware of the ledger API.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing wraps otelgin. Spans are named after the route pattern and carry
// request_id, tenant_id and user_id once the request has been handled.
// 5xx responses mark the span failed.
func Tracing(serviceName string, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	base := otelgin.Middleware(serviceName)
	return func(c *gin.Context) {
		// otelgin runs the rest of the chain itself
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		enrichSpan(c, span)
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := GetRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if tenantID := GetTenantID(c); tenantID != uuid.Nil {
		span.SetAttributes(attribute.String("tenant_id", tenantID.String()))
	}
	if userID := GetUserID(c); userID != uuid.Nil {
		span.SetAttributes(attribute.String("user_id", userID.String()))
	}
}
