package salon

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in cents.
type Money int64

// MaxMoney is the largest accepted amount. It leaves room for summing a
// thousand such amounts without overflowing int64.
const MaxMoney Money = math.MaxInt64 / 1000

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(int64(MaxMoney))
)

// ParseMoney parses a user supplied amount into cents.
// Both "1.234,56" and "1234.56" are accepted; when a comma is present it is
// taken as the decimal separator and dots as thousands separators.
func ParseMoney(s string) (Money, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "R$")
	clean = strings.TrimSpace(clean)

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", ErrInvalidInput, s)
	}

	if d.IsNegative() {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidInput, s)
	}

	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: amount %q is too large", ErrInvalidInput, s)
	}

	return Money(cents.IntPart()), nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with two fraction digits, e.g. "150.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts JSON numbers as well as quoted amounts.
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))
	if raw == "null" {
		*m = 0
		return nil
	}

	v, err := ParseMoney(raw)
	if err != nil {
		return err
	}

	*m = v

	return nil
}
