//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"biblio-api/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCustomRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("panic becomes a 500 with the flat error envelope", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.CustomRecovery())
		engine.GET("/boom", func(c *gin.Context) {
			panic("unexpected")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.JSONEq(t, `{"error": "Internal server error"}`, w.Body.String())
	})

	t.Run("normal responses pass through untouched", func(t *testing.T) {
		engine := gin.New()
		engine.Use(middleware.CustomRecovery())
		engine.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	})
}
