package state

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-ops-backend/config"
	"fleet-ops-backend/internal/model"
	"fleet-ops-backend/internal/store"
)

// flakyStore wraps a real store and fails ListDrivers on demand, which
// sinks the whole bulk fetch.
type flakyStore struct {
	store.Store
	fail  atomic.Bool
	loads atomic.Int64
}

func (s *flakyStore) ListDrivers(ctx context.Context) ([]model.Driver, error) {
	s.loads.Add(1)
	if s.fail.Load() {
		return nil, errors.New("connection reset")
	}
	return s.Store.ListDrivers(ctx)
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestRefresherRun_KeepsSnapshotOnFailure(t *testing.T) {
	inner := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, inner.CreateDriver(ctx, &model.Driver{
		ID: "d1", Name: "Abe", Classification: model.ClassDedicated, Active: true,
	}))

	fs := &flakyStore{Store: inner}
	st := New()
	require.NoError(t, st.Load(ctx, fs))
	require.Len(t, st.Drivers(), 1)

	// A second driver lands in the store, but every refresh fails.
	require.NoError(t, inner.CreateDriver(ctx, &model.Driver{
		ID: "d2", Name: "Bea", Classification: model.ClassDedicated, Active: true,
	}))
	fs.fail.Store(true)

	loadsBefore := fs.loads.Load()
	cfg := &config.RefreshConfig{Enabled: true, Interval: 10 * time.Millisecond}
	go NewRefresher(cfg, st, fs).Run(ctx)

	// The loop must keep ticking through failures, and the snapshot must
	// keep showing the last good load.
	waitFor(t, func() bool { return fs.loads.Load() >= loadsBefore+2 },
		"refresher stopped ticking after a failed load")
	assert.Len(t, st.Drivers(), 1, "failed refresh must not touch the snapshot")

	// Once the store recovers, the next tick picks up the new row.
	fs.fail.Store(false)
	waitFor(t, func() bool { return len(st.Drivers()) == 2 },
		"refresher never recovered after the store came back")
}

func TestRefresherRun_Disabled(t *testing.T) {
	cfg := &config.RefreshConfig{Enabled: false, Interval: time.Millisecond}
	r := NewRefresher(cfg, New(), newTestStore(t))

	// Returns immediately instead of looping.
	r.Run(context.Background())
}
