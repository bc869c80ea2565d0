package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"animal-finder-api-server/internal/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(RequestLogger(logger), ErrorHandler(logger))
	r.GET("/", handler)
	return r
}

func serve(t *testing.T, r *gin.Engine) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorHandlerAppError(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.Error(apperrors.ErrInvalidCursor)
	})

	code, body := serve(t, r)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, map[string]interface{}{"error": "Invalid startAfter ID", "code": "INVALID_CURSOR"}, body)
}

func TestErrorHandlerStoreFailureCarriesDetails(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.Error(apperrors.StoreFailure("Failed to fetch animals", errors.New("unavailable")))
	})

	code, body := serve(t, r)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to fetch animals", body["error"])
	assert.Equal(t, "unavailable", body["details"])
}

func TestErrorHandlerUnknownError(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.Error(errors.New("boom"))
	})

	code, body := serve(t, r)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	r := newRouter(func(c *gin.Context) {
		c.Error(errors.New("logged only"))
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	})

	code, body := serve(t, r)
	assert.Equal(t, http.StatusAccepted, code)
	assert.Equal(t, true, body["ok"])
}
