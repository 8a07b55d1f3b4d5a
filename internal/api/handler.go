package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"fleet-ops-backend/internal/schedule"
	"fleet-ops-backend/internal/state"
	"fleet-ops-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	state    *state.State
	schedule *schedule.Service
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, st *state.State, sched *schedule.Service, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		state:    st,
		schedule: sched,
		webpush:  webpushOptions,
	}
}
