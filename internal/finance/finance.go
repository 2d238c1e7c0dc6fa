// Package finance derives revenue figures from appointments.
//
// Monthly figures only count completed appointments (realized revenue). The
// daily schedule total counts everything that is not cancelled, so it mixes
// projected and realized revenue.
package finance

import (
	"fmt"
	"sort"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// Label renders the key as "{month}/{year}", e.g. "5/2024".
func (k MonthKey) Label() string {
	return fmt.Sprintf("%d/%d", int(k.Month), k.Year)
}

// Start returns the first instant of the month in UTC.
func (k MonthKey) Start() time.Time {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC)
}

func KeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// MonthTotal is the realized revenue of one month.
type MonthTotal struct {
	Key   MonthKey
	Total salon.Money
	Count int
}

func (m MonthTotal) Label() string {
	return m.Key.Label()
}

// Summary is the financial overview of all completed appointments.
type Summary struct {
	Months       []MonthTotal
	Total        salon.Money
	Count        int
	CurrentMonth salon.Money
}

// Monthly groups completed appointments by the month of their date and
// returns the totals in chronological order. Appointments with an
// unparseable date are ignored.
func Monthly(appointments []salon.Appointment) []MonthTotal {
	groups := make(map[MonthKey]*MonthTotal)

	for _, a := range appointments {
		if a.Status != salon.StatusCompleted {
			continue
		}

		d, err := time.Parse(salon.DateLayout, a.Date)
		if err != nil {
			continue
		}

		key := KeyOf(d)

		g, ok := groups[key]
		if !ok {
			g = &MonthTotal{Key: key}
			groups[key] = g
		}

		g.Total += a.Price
		g.Count++
	}

	months := make([]MonthTotal, 0, len(groups))
	for _, g := range groups {
		months = append(months, *g)
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Key.Start().Before(months[j].Key.Start())
	})

	return months
}

// Summarize computes the monthly totals plus overall figures. The current
// month is taken from now; it is zero when nothing was completed this month.
func Summarize(appointments []salon.Appointment, now time.Time) Summary {
	s := Summary{Months: Monthly(appointments)}
	current := KeyOf(now)

	for _, m := range s.Months {
		s.Total += m.Total
		s.Count += m.Count

		if m.Key == current {
			s.CurrentMonth = m.Total
		}
	}

	return s
}

// DailyTotal sums the price of every appointment on date that was not
// cancelled.
func DailyTotal(appointments []salon.Appointment, date string) salon.Money {
	var total salon.Money

	for _, a := range appointments {
		if a.Date == date && a.Status != salon.StatusCancelled {
			total += a.Price
		}
	}

	return total
}

// ProcedureTotal is the realized revenue of one procedure combination.
type ProcedureTotal struct {
	Name  string
	Total salon.Money
	Count int
}

// ByProcedure groups completed appointments by their procedure name, highest
// revenue first.
func ByProcedure(appointments []salon.Appointment) []ProcedureTotal {
	groups := make(map[string]*ProcedureTotal)

	for _, a := range appointments {
		if a.Status != salon.StatusCompleted {
			continue
		}

		g, ok := groups[a.ProcedureName]
		if !ok {
			g = &ProcedureTotal{Name: a.ProcedureName}
			groups[a.ProcedureName] = g
		}

		g.Total += a.Price
		g.Count++
	}

	out := make([]ProcedureTotal, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}

		return out[i].Name < out[j].Name
	})

	return out
}
