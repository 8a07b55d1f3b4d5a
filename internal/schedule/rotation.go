package schedule

import (
	"time"

	"github.com/google/uuid"

	"fleet-ops-backend/internal/model"
)

// HorizonDays is the number of scheduled (non-excluded) days every
// generation run produces.
const HorizonDays = 30

// DateOnly truncates a timestamp to its calendar day, stored at UTC
// midnight. The day is taken in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BuildRotation computes the rotating assignment calendar: starting at
// start, it walks forward day-by-day, skipping excluded weekdays, until
// HorizonDays scheduled days are produced. Driver i starts at location
// offset i and advances one location every rotationInterval scheduled
// days, wrapping modulo the location count.
//
// Both input slices must be non-empty and rotationInterval positive; the
// caller validates. Entry order is by day, then by driver position.
func BuildRotation(drivers []model.Driver, locations []model.Location, start time.Time, rotationInterval int, excluded map[time.Weekday]bool) []model.ScheduleEntry {
	entries := make([]model.ScheduleEntry, 0, HorizonDays*len(drivers))

	day := DateOnly(start)
	for scheduled := 0; scheduled < HorizonDays; {
		if !excluded[day.Weekday()] {
			block := scheduled / rotationInterval
			for i, d := range drivers {
				loc := locations[(i+block)%len(locations)]
				entries = append(entries, model.ScheduleEntry{
					ID:           uuid.NewString(),
					DriverID:     d.ID,
					DriverName:   d.Name,
					Date:         day,
					LocationID:   loc.ID,
					LocationName: loc.Name,
				})
			}
			scheduled++
		}
		day = day.AddDate(0, 0, 1)
	}

	return entries
}
