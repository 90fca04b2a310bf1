package telemetry

import (
	"context"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
	ProfilingLabelTenantID   = "tenant_id"
	ProfilingLabelOperation  = "operation"
	ProfilingLabelReportType = "report_type"
)

// MaxLabelValueLength caps label values
const MaxLabelValueLength = 128

// highCardinalityLabels are never attached to profiles
var highCardinalityLabels = map[string]bool{
	"user_id":    true,
	"request_id": true,
	"invoice_id": true,
	"trace_id":   true,
	"span_id":    true,
}

// WithProfilingLabels runs fn with the labels attached to its profile samples
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// HTTPRequestLabels labels a request by route, method and tenant
func HTTPRequestLabels(route, method, tenantID string) map[string]string {
	return map[string]string{
		ProfilingLabelRoute:    route,
		ProfilingLabelMethod:   method,
		ProfilingLabelTenantID: tenantID,
	}
}

// ReportLabels labels one report run
func ReportLabels(reportType, tenantID string) map[string]string {
	return map[string]string{
		ProfilingLabelOperation:  "generate_report",
		ProfilingLabelReportType: reportType,
		ProfilingLabelTenantID:   tenantID,
	}
}

// sanitizeLabels returns sorted key/value pairs with empty, high-cardinality
// and malformed keys removed and long values truncated
func sanitizeLabels(labels map[string]string) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if value == "" || highCardinalityLabels[key] {
			continue
		}
		clean := sanitizeLabelKey(key)
		if clean == "" {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, clean, value)
	}
	return pairs
}

func sanitizeLabelKey(key string) string {
	key = strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(key))
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
