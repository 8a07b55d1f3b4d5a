package schedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fleet-ops-backend/internal/state"
	"fleet-ops-backend/internal/store"
)

// Validation aborts: reported to the user, no store calls are made and
// no state changes.
var (
	ErrNoDedicatedDrivers  = errors.New("no active dedicated drivers to schedule")
	ErrNoRotationLocations = errors.New("no rotation-eligible locations to schedule")
	ErrInvalidInterval     = errors.New("rotation interval must be a positive number of days")
	ErrAllWeekdaysExcluded = errors.New("cannot exclude all seven weekdays")
)

// ErrNoEntryToday is returned by UpdateDriverToday when the driver has no
// schedule entry for the current day. The update targets an existing row
// and expects exactly one match.
var ErrNoEntryToday = errors.New("driver has no schedule entry for today")

// Notifier receives the IDs of drivers whose assignment changed.
type Notifier interface {
	Dispatch(driverID string)
}

// Service implements the schedule operations: rotation generation,
// single-day override and clear.
type Service struct {
	store    store.Store
	state    *state.State
	notifier Notifier // may be nil
	loc      *time.Location
}

// NewService creates a schedule service. The notifier may be nil; loc is
// the timezone used to determine the current calendar day.
func NewService(st store.Store, s *state.State, notifier Notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: st, state: s, notifier: notifier, loc: loc}
}

// Today returns the current calendar day in the service's timezone.
func (s *Service) Today() time.Time {
	return DateOnly(time.Now().In(s.loc))
}

// Generate replaces the stored schedule for all currently active
// dedicated drivers with a fresh 30-scheduled-day rotation calendar
// starting today. The delete and the insert are separate store calls and
// are not rolled back together: a failing insert after a successful
// delete leaves the affected drivers with no schedule. The in-memory
// snapshot is only replaced once the final re-read succeeds, so any
// failure leaves it showing the pre-operation schedule.
func (s *Service) Generate(ctx context.Context, rotationInterval int, excludedWeekdays map[time.Weekday]bool) error {
	if rotationInterval <= 0 {
		return ErrInvalidInterval
	}
	if len(excludedWeekdays) >= 7 {
		return ErrAllWeekdaysExcluded
	}

	drivers := s.state.RotatingDrivers()
	if len(drivers) == 0 {
		return ErrNoDedicatedDrivers
	}
	locations := s.state.RotationLocations()
	if len(locations) == 0 {
		return ErrNoRotationLocations
	}

	entries := BuildRotation(drivers, locations, s.Today(), rotationInterval, excludedWeekdays)

	driverIDs := make([]string, len(drivers))
	for i, d := range drivers {
		driverIDs[i] = d.ID
	}

	if err := s.store.DeleteScheduleForDrivers(ctx, driverIDs); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := s.store.CreateScheduleEntries(ctx, entries); err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	// Read-after-write: replace the snapshot with the canonical stored
	// copy rather than the locally computed entries.
	fresh, err := s.store.ListSchedule(ctx)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	s.state.SetSchedule(fresh)

	log.Printf("Generated %d schedule entries for %d drivers over %d locations", len(entries), len(drivers), len(locations))
	s.notify(driverIDs...)
	return nil
}

// UpdateDriverToday overwrites today's entry for one driver with a new
// location and reports whether anything changed. An unknown location id
// is a no-op returning false; a missing (driver, today) entry is an
// error.
func (s *Service) UpdateDriverToday(ctx context.Context, driverID, locationID string) (bool, error) {
	loc, ok := s.state.LocationByID(locationID)
	if !ok {
		return false, nil
	}

	today := s.Today()
	rows, err := s.store.UpdateScheduleEntryLocation(ctx, driverID, today, loc.ID, loc.Name)
	if err != nil {
		return false, fmt.Errorf("update today: %w", err)
	}
	if rows == 0 {
		return false, ErrNoEntryToday
	}

	s.state.RelocateEntry(driverID, today, loc.ID, loc.Name)
	s.notify(driverID)
	return true, nil
}

// Clear deletes every schedule entry unconditionally and empties the
// snapshot's schedule.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.DeleteAllSchedule(ctx); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	s.state.SetSchedule(nil)
	return nil
}

func (s *Service) notify(driverIDs ...string) {
	if s.notifier == nil {
		return
	}
	for _, id := range driverIDs {
		s.notifier.Dispatch(id)
	}
}
