package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    map[string]Pinger
}

// NewSystemHandler creates a new SystemHandler. Health pings each check.
func NewSystemHandler(name, version string, checks map[string]Pinger) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    checks,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// HealthResponse reports overall status and the result of each check
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// GetSystemInfo handles GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Health handles GET /health. Any failing check turns the response into a 503.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	for name, check := range h.checks {
		errCh := make(chan error, 1)
		go func() { errCh <- check.Ping() }()
		select {
		case err := <-errCh:
			if err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = err.Error()
				continue
			}
			resp.Checks[name] = "ok"
		case <-ctx.Done():
			resp.Status = "degraded"
			resp.Checks[name] = "timeout"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}
