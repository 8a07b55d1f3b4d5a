package api

import (
	"net/http"
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops-backend/config"
)

func TestGetVAPIDPublicKey(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		router, _, _ := newTestServer(t)

		w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("configured", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		handler := NewHandler(nil, nil, nil, &webpush.Options{VAPIDPublicKey: "BPub"})
		router := NewRouter(handler, &config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 1,
		})

		w := doJSON(t, router, http.MethodGet, "/api/vapid_public_key", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"public_key":"BPub"}`, w.Body.String())
	})
}
