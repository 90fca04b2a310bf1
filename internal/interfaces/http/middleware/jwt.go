package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/auth"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenValidator validates a bearer token
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	Validator TokenValidator
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuthMiddleware requires a valid bearer token and stores its tenant and
// user claims on the context
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		for _, skip := range cfg.SkipPaths {
			if c.Request.URL.Path == skip {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		token, found := strings.CutPrefix(header, BearerPrefix)
		if header == "" || !found || token == "" {
			abortUnauthorized(c, log, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.Validator.Validate(token)
		if err != nil {
			abortUnauthorized(c, log, err)
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := dto.ErrCodeTokenInvalid, "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "Token is not yet valid"
	case errors.Is(err, auth.ErrMissingTenantID), errors.Is(err, auth.ErrMissingUserID):
		message = "Token is missing tenant or user claims"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}
