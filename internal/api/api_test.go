package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-ops-backend/config"
	"fleet-ops-backend/internal/db"
	"fleet-ops-backend/internal/schedule"
	"fleet-ops-backend/internal/state"
	"fleet-ops-backend/internal/store"
)

// newTestServer wires a router against an in-memory database, mirroring
// the wiring in main.
func newTestServer(t *testing.T) (*gin.Engine, store.Store, *state.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open("file:apitest_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	appStore := store.NewGormStore(gormDB)
	appState := state.New()
	require.NoError(t, appState.Load(context.Background(), appStore))

	scheduleSvc := schedule.NewService(appStore, appState, nil, time.UTC)
	handler := NewHandler(appStore, appState, scheduleSvc, nil)

	cfg := &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	return NewRouter(handler, cfg), appStore, appState
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeList[T any](t *testing.T, w *httptest.ResponseRecorder) []T {
	t.Helper()
	var out []T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func decodeObj[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
