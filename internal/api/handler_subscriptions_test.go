package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops-backend/internal/model"
)

type subscriptionResponse struct {
	SubscribedDrivers []string `json:"subscribed_drivers"`
}

func TestSubscriptionRoundTrip(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/drivers", gin.H{"name": "Abe"})
	require.Equal(t, http.StatusCreated, w.Code)
	driver := decodeObj[model.Driver](t, w)

	endpoint := "https://push.example.com/v1/AbCdEf=="

	w = doJSON(t, router, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint": endpoint, "p256dh": "key", "auth": "secret",
		"subscribed_drivers": []string{driver.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decodeObj[subscriptionResponse](t, w)
	assert.Equal(t, []string{driver.ID}, got.SubscribedDrivers)

	// Replacing the driver set drops the old mapping.
	w = doJSON(t, router, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint": endpoint, "p256dh": "key2", "auth": "secret2",
		"subscribed_drivers": []string{},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decodeObj[subscriptionResponse](t, w)
	assert.Empty(t, got.SubscribedDrivers)

	w = doJSON(t, router, http.MethodDelete, "/api/subscriptions", gin.H{"endpoint": endpoint})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/subscriptions?endpoint="+endpoint, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutSubscription_MissingFields(t *testing.T) {
	router, _, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPut, "/api/subscriptions", gin.H{"endpoint": "https://x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRawQueryParam(t *testing.T) {
	// Push endpoints contain characters that must not be URL-decoded.
	endpoint := "https://push.example.com/v1/Ab+Cd%2FEf=="
	raw := "endpoint=" + endpoint

	got, ok := rawQueryParam(raw, "endpoint")
	require.True(t, ok)
	assert.Equal(t, endpoint, got)

	// url.Values would have mangled the escape sequence.
	decoded, err := url.ParseQuery(raw)
	require.NoError(t, err)
	assert.NotEqual(t, endpoint, decoded.Get("endpoint"))

	_, ok = rawQueryParam(raw, "missing")
	assert.False(t, ok)
}
