package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/movietracker/internal/service"
	"github.com/user/movietracker/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusOf(t *testing.T) {
	tests := map[service.Kind]int{
		service.KindValidation:         http.StatusBadRequest,
		service.KindConflict:           http.StatusBadRequest,
		service.KindInvalidCredentials: http.StatusUnauthorized,
		service.KindUnauthenticated:    http.StatusUnauthorized,
		service.KindForbidden:          http.StatusForbidden,
		service.KindNotFound:           http.StatusNotFound,
		service.KindStore:              http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusOf(kind), kind.String())
	}
}

func TestRespondErrorHidesStoreDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/watchlist", nil)

	respondError(c, &service.Error{Kind: service.KindStore, Message: "Server error", Err: assert.AnError})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server error", resp.Message)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestRespondErrorNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/watchlist/3", nil)

	respondError(c, service.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Not found"`)
}

func TestSafeRedirect(t *testing.T) {
	tests := map[string]string{
		"":                   "/",
		"/mylist":            "/mylist",
		"https://evil.test/": "/",
		"//evil.test":        "/",
		"calendar":           "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, safeRedirect(in), in)
	}
}
