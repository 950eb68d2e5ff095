package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SafeMPC/pox-signer/internal/api/httperrors"
	"github.com/SafeMPC/pox-signer/internal/api/middleware"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitPerClientIP(t *testing.T) {
	e := echo.New()
	h := middleware.RateLimit(0.001, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serve := func(remoteAddr string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodPost, "/get-signature", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		return rec, h(e.NewContext(req, rec))
	}

	rec, err := serve("192.0.2.1:1234")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, err = serve("192.0.2.1:4321")
	require.Error(t, err)
	assert.Equal(t, httperrors.ErrTooManyRequests, err)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// other clients keep their own bucket
	rec, err = serve("192.0.2.2:1234")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitSkipper(t *testing.T) {
	e := echo.New()
	h := middleware.RateLimitWithConfig(middleware.RateLimitConfig{
		Limit:   0.001,
		Burst:   1,
		Skipper: func(echo.Context) bool { return true },
	})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/get-signature", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
