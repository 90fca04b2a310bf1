package auth

import (
	"errors"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenantID  = errors.New("missing tenant_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrMissingSecret    = errors.New("jwt secret is required")
)

// Claims are the claims this service reads from tokens issued by the auth
// service. Only tenant_id and user_id are required.
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// TenantUUID parses the tenant_id claim
func (c *Claims) TenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// UserUUID parses the user_id claim
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// JWTService verifies HMAC-signed bearer tokens. Sign exists for local
// tooling and tests; production tokens come from the auth service.
type JWTService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewJWTService creates a JWTService from config
func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	return &JWTService{secret: []byte(cfg.Secret), issuer: cfg.Issuer, now: time.Now}, nil
}

// Sign issues a token for tenantID/userID that expires after ttl
func (s *JWTService) Sign(tenantID, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TenantID: tenantID.String(),
		UserID:   userID.String(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses tokenString and checks signature, time window, issuer and
// the presence of tenant and user claims
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if _, err := claims.TenantUUID(); err != nil {
		return nil, ErrMissingTenantID
	}
	if _, err := claims.UserUUID(); err != nil {
		return nil, ErrMissingUserID
	}
	return claims, nil
}
