package state

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fleet-ops-backend/internal/model"
	"fleet-ops-backend/internal/store"
)

// State is the in-memory snapshot of every table. Schedule operations
// read drivers and locations from it in their loaded (name-ascending)
// order, and CRUD handlers refresh the relevant slice after each write
// so the snapshot tracks the canonical stored copy.
type State struct {
	mu        sync.RWMutex
	products  []model.Product
	drivers   []model.Driver
	locations []model.Location
	sales     []model.Sale
	schedule  []model.ScheduleEntry
	payments  []model.Payment
	settings  *model.Setting
}

// New returns an empty State.
func New() *State {
	return &State{}
}

// Load fetches all tables concurrently and replaces the snapshot in one
// step. All-or-nothing: the first fetch error aborts the whole load and
// the previous snapshot is kept.
func (s *State) Load(ctx context.Context, st store.Store) error {
	var (
		products  []model.Product
		drivers   []model.Driver
		locations []model.Location
		sales     []model.Sale
		schedule  []model.ScheduleEntry
		payments  []model.Payment
		settings  *model.Setting
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { products, err = st.ListProducts(gctx); return })
	g.Go(func() (err error) { drivers, err = st.ListDrivers(gctx); return })
	g.Go(func() (err error) { locations, err = st.ListLocations(gctx); return })
	g.Go(func() (err error) { sales, err = st.ListSales(gctx); return })
	g.Go(func() (err error) { schedule, err = st.ListSchedule(gctx); return })
	g.Go(func() (err error) { payments, err = st.ListPayments(gctx); return })
	g.Go(func() (err error) { settings, err = st.GetSettings(gctx); return })
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.drivers = drivers
	s.locations = locations
	s.sales = sales
	s.schedule = schedule
	s.payments = payments
	s.settings = settings
	return nil
}

// --- Getters (copies, safe for concurrent use) ---

func (s *State) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products))
	return append(out, s.products...)
}

func (s *State) Drivers() []model.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Driver, 0, len(s.drivers))
	return append(out, s.drivers...)
}

func (s *State) Locations() []model.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Location, 0, len(s.locations))
	return append(out, s.locations...)
}

func (s *State) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Sale, 0, len(s.sales))
	return append(out, s.sales...)
}

func (s *State) Schedule() []model.ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScheduleEntry, 0, len(s.schedule))
	return append(out, s.schedule...)
}

func (s *State) Payments() []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Payment, 0, len(s.payments))
	return append(out, s.payments...)
}

// Settings returns the settings row, or nil when none is stored.
func (s *State) Settings() *model.Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil
	}
	cp := *s.settings
	return &cp
}

// RotatingDrivers returns the active dedicated drivers in loaded order.
func (s *State) RotatingDrivers() []model.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Driver
	for _, d := range s.drivers {
		if d.Rotates() {
			out = append(out, d)
		}
	}
	return out
}

// RotationLocations returns the rotation-eligible locations in loaded order.
func (s *State) RotationLocations() []model.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Location
	for _, l := range s.locations {
		if l.Category == model.CategoryRotation {
			out = append(out, l)
		}
	}
	return out
}

// LocationByID resolves a location from the snapshot.
func (s *State) LocationByID(id string) (model.Location, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.locations {
		if l.ID == id {
			return l, true
		}
	}
	return model.Location{}, false
}

// ProductByID resolves a product from the snapshot.
func (s *State) ProductByID(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// DriverByID resolves a driver from the snapshot.
func (s *State) DriverByID(id string) (model.Driver, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.drivers {
		if d.ID == id {
			return d, true
		}
	}
	return model.Driver{}, false
}

// --- Setters (replace one slice with the freshly read stored copy) ---

func (s *State) SetProducts(v []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = v
}

func (s *State) SetDrivers(v []model.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers = v
}

func (s *State) SetLocations(v []model.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = v
}

func (s *State) SetSales(v []model.Sale) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = v
}

func (s *State) SetSchedule(v []model.ScheduleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedule = v
}

func (s *State) SetPayments(v []model.Payment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = v
}

func (s *State) SetSettings(v *model.Setting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = v
}

// RelocateEntry updates the location of the (driver, date) schedule entry
// in place. Returns false when no such entry is in the snapshot.
func (s *State) RelocateEntry(driverID string, date time.Time, locationID, locationName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.schedule {
		if s.schedule[i].DriverID == driverID && s.schedule[i].Date.Equal(date) {
			s.schedule[i].LocationID = locationID
			s.schedule[i].LocationName = locationName
			return true
		}
	}
	return false
}
