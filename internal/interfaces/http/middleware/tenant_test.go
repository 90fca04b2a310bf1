package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/infrastructure/logger"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type identitySeen struct {
	tenant    uuid.UUID
	user      uuid.UUID
	logTenant uuid.UUID
}

func newIdentityRouter(pre gin.HandlerFunc, seen *identitySeen) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	if pre != nil {
		r.Use(pre)
	}
	r.Use(Identity())
	r.GET("/", func(c *gin.Context) {
		seen.tenant = GetTenantID(c)
		seen.user = GetUserID(c)
		seen.logTenant = logger.GetTenantID(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return r
}

func TestIdentity_Headers(t *testing.T) {
	tenantID, userID := uuid.New(), uuid.New()

	t.Run("tenant and user", func(t *testing.T) {
		var seen identitySeen
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		req.Header.Set(UserHeaderKey, userID.String())
		w := httptest.NewRecorder()
		newIdentityRouter(nil, &seen).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID, seen.tenant)
		assert.Equal(t, userID, seen.user)
		assert.Equal(t, tenantID, seen.logTenant)
	})

	t.Run("user defaults to tenant", func(t *testing.T) {
		var seen identitySeen
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		w := httptest.NewRecorder()
		newIdentityRouter(nil, &seen).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tenantID, seen.user)
	})
}

func TestIdentity_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		tenant  string
		user    string
		message string
	}{
		{"missing tenant", "", "", "Tenant identification required"},
		{"malformed tenant", "acme", "", "Invalid tenant ID format"},
		{"malformed user", uuid.NewString(), "bob", "Invalid user ID format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen identitySeen
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.tenant != "" {
				req.Header.Set(TenantHeaderKey, tt.tenant)
			}
			if tt.user != "" {
				req.Header.Set(UserHeaderKey, tt.user)
			}
			w := httptest.NewRecorder()
			newIdentityRouter(nil, &seen).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, dto.ErrCodeTenantRequired, resp.Error.Code)
			assert.Equal(t, tt.message, resp.Error.Message)
			assert.Equal(t, uuid.Nil, seen.tenant)
		})
	}
}

func TestIdentity_ClaimsWinOverHeaders(t *testing.T) {
	svc := newTestJWTService(t)
	claimTenant, claimUser := uuid.New(), uuid.New()
	token, err := svc.Sign(claimTenant, claimUser, time.Hour)
	require.NoError(t, err)

	var seen identitySeen
	r := newIdentityRouter(JWTAuthMiddleware(JWTMiddlewareConfig{Validator: svc}), &seen)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	req.Header.Set(TenantHeaderKey, uuid.NewString())
	req.Header.Set(UserHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, claimTenant, seen.tenant)
	assert.Equal(t, claimUser, seen.user)
}

func TestGetTenantID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, GetTenantID(c))
	assert.Equal(t, uuid.Nil, GetUserID(c))

	c.Set(TenantIDKey, "not-a-uuid-value")
	assert.Equal(t, uuid.Nil, GetTenantID(c))
}
