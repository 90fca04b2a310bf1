package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the API documentation routes
type SwaggerConfig struct {
	Enabled     bool
	RequireAuth bool     // run the auth middleware before serving the docs
	AllowedIPs  []string // single IPs or CIDR ranges; empty allows everyone
}

// SwaggerProtection guards /swagger. Disabled docs answer 404; an IP
// allowlist answers 403 to everyone outside it; RequireAuth runs authMiddleware
// first and stops if it aborts.
func SwaggerProtection(cfg SwaggerConfig, authMiddleware gin.HandlerFunc) gin.HandlerFunc {
	allowedIPs, allowedNets := parseAllowlist(cfg.AllowedIPs)

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound,
				dto.NewErrorResponse(shared.CodeNotFound, "API documentation is not available", GetRequestID(c)))
			return
		}

		if len(cfg.AllowedIPs) > 0 && !isIPAllowed(clientIP(c), allowedIPs, allowedNets) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Access to API documentation is restricted", GetRequestID(c)))
			return
		}

		if cfg.RequireAuth && authMiddleware != nil {
			authMiddleware(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// parseAllowlist splits entries into exact IPs and CIDR networks, dropping
// anything that parses as neither
func parseAllowlist(entries []string) ([]net.IP, []*net.IPNet) {
	var ips []net.IP
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips, nets
}

// clientIP prefers gin's proxy-aware ClientIP and falls back to RemoteAddr
func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range allowedIPs {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
