// Package notify fires appointment alerts at fixed offsets before each
// scheduled appointment starts.
//
// The engine is polled: on every tick it compares the rounded number of
// minutes until each appointment against the offsets and fires when they are
// equal. An offset is therefore only seen during a single polling window, and
// with an interval coarser than one minute an offset can be skipped entirely.
// Missed offsets are never fired retroactively and clock changes are not
// compensated.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// DefaultOffsets returns the minutes before start at which alerts fire.
func DefaultOffsets() []int {
	return []int{15, 0}
}

// Alert is a single notification about an appointment.
type Alert struct {
	Key           string
	AppointmentID string
	Offset        int
	Title         string
	Body          string
}

// Tag returns the identifier used by sinks to collapse duplicate alerts.
func (a Alert) Tag() string {
	return a.Key
}

// Key builds the dedup key of an appointment/offset pair.
func Key(appointmentID string, offset int) string {
	return appointmentID + ":" + strconv.Itoa(offset)
}

// Fired is the set of dedup keys that already produced an alert.
// It lives for the lifetime of the process and is not persisted.
type Fired map[string]struct{}

func NewFired() Fired {
	return make(Fired)
}

func (f Fired) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fired) Add(key string) {
	f[key] = struct{}{}
}

// Dispatcher delivers alerts. Permitted reports whether the user allowed
// alerts at all; when it returns false no scan takes place.
type Dispatcher interface {
	Permitted() bool
	Dispatch(ctx context.Context, alert Alert) error
}

// Engine decides which alerts are due.
type Engine struct {
	offsets []int
	loc     *time.Location
}

func NewEngine(loc *time.Location, offsets ...int) *Engine {
	if len(offsets) == 0 {
		offsets = DefaultOffsets()
	}

	if loc == nil {
		loc = time.Local
	}

	return &Engine{offsets: slices.Clone(offsets), loc: loc}
}

// Offsets returns a copy of the offsets the engine fires at.
func (e *Engine) Offsets() []int {
	return slices.Clone(e.offsets)
}

// Scan returns the alerts due at now and records their keys in fired.
// Only scheduled appointments are considered; a key already in fired is
// never returned again.
func (e *Engine) Scan(now time.Time, appointments []salon.Appointment, fired Fired) []Alert {
	var due []Alert

	for _, apt := range appointments {
		if apt.Status != salon.StatusScheduled {
			continue
		}

		start, err := apt.Start(e.loc)
		if err != nil {
			slog.Warn("skipping appointment with invalid schedule", "appointment_id", apt.ID, "error", err)
			continue
		}

		diff := minutesUntil(now, start)

		for _, offset := range e.offsets {
			if diff != offset {
				continue
			}

			key := Key(apt.ID, offset)
			if fired.Has(key) {
				continue
			}

			fired.Add(key)
			due = append(due, newAlert(apt, offset))
		}
	}

	return due
}

// minutesUntil rounds half towards positive infinity so that an instant
// exactly 30s past a minute boundary rounds up.
func minutesUntil(now, start time.Time) int {
	mins := float64(start.Sub(now).Milliseconds()) / 60000

	return int(math.Floor(mins + 0.5))
}

func newAlert(apt salon.Appointment, offset int) Alert {
	title := fmt.Sprintf("Appointment in %d min: %s", offset, apt.ClientName)
	if offset == 0 {
		title = "Appointment now: " + apt.ClientName
	}

	return Alert{
		Key:           Key(apt.ID, offset),
		AppointmentID: apt.ID,
		Offset:        offset,
		Title:         title,
		Body:          fmt.Sprintf("%s scheduled for %s.", apt.ProcedureName, apt.Time),
	}
}
