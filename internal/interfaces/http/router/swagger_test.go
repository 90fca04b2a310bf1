package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

var ginParam = regexp.MustCompile(`:([a-zA-Z_]+)`)

func TestSwaggerDoc_CoversEveryAPIRoute(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		BasePath string                            `json:"basePath"`
		Paths    map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)

	engine := gin.New()
	Setup(engine, testHandlers())

	documented := 0
	for _, route := range engine.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		path := ginParam.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		ops, ok := doc.Paths[path]
		if !assert.Truef(t, ok, "path %s is not documented", path) {
			continue
		}
		_, ok = ops[strings.ToLower(route.Method)]
		assert.Truef(t, ok, "%s %s is not documented", route.Method, path)
		documented++
	}
	assert.Positive(t, documented)
}

func TestRegisterSwagger(t *testing.T) {
	t.Run("serves doc.json", func(t *testing.T) {
		engine := gin.New()
		RegisterSwagger(engine, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GST Ledger API")
	})

	t.Run("guard runs before the docs handler", func(t *testing.T) {
		engine := gin.New()
		RegisterSwagger(engine, func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
