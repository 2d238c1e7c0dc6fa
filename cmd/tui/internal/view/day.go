package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/salon/internal/salon"
)

// ShiftDay moves a YYYY-MM-DD date by n days. Invalid input is returned as is.
func ShiftDay(date string, n int) string {
	t, err := time.Parse(salon.DateLayout, date)
	if err != nil {
		return date
	}

	return t.AddDate(0, 0, n).Format(salon.DateLayout)
}

// Today returns the current date in loc.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(salon.DateLayout)
}

// DayLabel renders a date header such as "Sat 01/06/2024".
func DayLabel(date string) string {
	t, err := time.Parse(salon.DateLayout, date)
	if err != nil {
		return date
	}

	return t.Format("Mon 02/01/2006")
}

func validateDate(s string) error {
	if _, err := time.Parse(salon.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func validateTime(s string) error {
	if _, err := time.Parse(salon.TimeLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM")
	}

	return nil
}

func validatePrice(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := salon.ParseMoney(s); err != nil {
		return fmt.Errorf("invalid amount")
	}

	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}

		return nil
	}
}
