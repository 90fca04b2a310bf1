package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestTracing_Disabled(t *testing.T) {
	recorder := installSpanRecorder(t)
	r := gin.New()
	r.Use(Tracing("ledger-test", false))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorder.Ended())
}

func TestTracing_EnrichesSpan(t *testing.T) {
	recorder := installSpanRecorder(t)
	tenantID := uuid.New()

	r := gin.New()
	r.Use(RequestID(), Tracing("ledger-test", true))
	r.Use(func(c *gin.Context) {
		c.Set(TenantIDKey, tenantID)
		c.Set(UserIDKey, tenantID)
		c.Next()
	})
	r.GET("/ledgers/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusServiceUnavailable) })

	req := httptest.NewRequest(http.MethodGet, "/ledgers/"+uuid.NewString(), nil)
	req.Header.Set(RequestIDHeader, "req-42")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	ok := spans[0]
	assert.Contains(t, ok.Name(), "/ledgers/:id")
	attrs := make(map[string]string)
	for _, kv := range ok.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "req-42", attrs["request_id"])
	assert.Equal(t, tenantID.String(), attrs["tenant_id"])
	assert.Equal(t, tenantID.String(), attrs["user_id"])
	assert.NotEqual(t, codes.Error, ok.Status().Code)

	failed := spans[1]
	assert.Equal(t, codes.Error, failed.Status().Code)
}
