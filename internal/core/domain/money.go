package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnitMismatch is returned when two values with different unit tags are combined.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrDivisionByZero is returned when a value is divided by a zero scalar.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInvalidAmount is returned when a magnitude string cannot be parsed.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Unit tags a Money value with its dimension: the kilogram unit for
// quantities, or an ISO 4217 currency code for monetary amounts.
type Unit string

// UnitKilogram is the unit tag for physical quantities.
const UnitKilogram Unit = "kg"

// Decimal places applied at formatting/persistence time. Internal arithmetic
// keeps full precision so repeated operations do not accumulate rounding drift.
const (
	currencyPlaces int32 = 2
	kilogramPlaces int32 = 3
)

// Money is an immutable arbitrary-precision value carrying a unit tag.
// It is used for both currency amounts and kilogram quantities; the two
// never mix in a single arithmetic operation.
type Money struct {
	amount decimal.Decimal
	unit   Unit
}

// NewMoney constructs a Money from a decimal string. There is deliberately no
// constructor from float64: values that passed through user input or
// persistence must never transit binary floating point.
func NewMoney(amount string, unit Unit) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	return Money{amount: d, unit: unit}, nil
}

// NewMoneyFromDecimal wraps an existing decimal with a unit tag.
func NewMoneyFromDecimal(d decimal.Decimal, unit Unit) Money {
	return Money{amount: d, unit: unit}
}

// MustMoney is NewMoney that panics on parse failure. For constants and tests.
func MustMoney(amount string, unit Unit) Money {
	m, err := NewMoney(amount, unit)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns the zero value for the given unit.
func ZeroMoney(unit Unit) Money {
	return Money{amount: decimal.Zero, unit: unit}
}

// ParseMoney parses the canonical "<amount> <unit>" form produced by Canonical.
func ParseMoney(s string) (Money, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewMoney(parts[0], Unit(parts[1]))
}

// Amount returns the full-precision magnitude.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Unit returns the unit tag.
func (m Money) Unit() Unit { return m.unit }

func (m Money) checkUnit(o Money) error {
	if m.unit != o.unit {
		return fmt.Errorf("%w: %s vs %s", ErrUnitMismatch, m.unit, o.unit)
	}
	return nil
}

// Add returns m + o. Fails if the unit tags differ.
func (m Money) Add(o Money) (Money, error) {
	if err := m.checkUnit(o); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(o.amount), unit: m.unit}, nil
}

// Sub returns m - o. Fails if the unit tags differ.
func (m Money) Sub(o Money) (Money, error) {
	if err := m.checkUnit(o); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Sub(o.amount), unit: m.unit}, nil
}

// Mul returns m scaled by a dimensionless factor.
func (m Money) Mul(scalar decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(scalar), unit: m.unit}
}

// Div returns m divided by a dimensionless factor.
func (m Money) Div(scalar decimal.Decimal) (Money, error) {
	if scalar.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.Div(scalar), unit: m.unit}, nil
}

// Neg returns m with the sign flipped.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), unit: m.unit}
}

// Cmp compares m against o: -1 if m < o, 0 if equal, 1 if m > o.
func (m Money) Cmp(o Money) (int, error) {
	if err := m.checkUnit(o); err != nil {
		return 0, err
	}
	return m.amount.Cmp(o.amount), nil
}

// LessThan reports m < o.
func (m Money) LessThan(o Money) (bool, error) {
	c, err := m.Cmp(o)
	return c < 0, err
}

// GreaterThanOrEqual reports m >= o.
func (m Money) GreaterThanOrEqual(o Money) (bool, error) {
	c, err := m.Cmp(o)
	return c >= 0, err
}

// Equal reports whether m and o carry the same unit and equal magnitudes.
// Unlike Cmp it never errors; mismatched units are simply not equal.
func (m Money) Equal(o Money) bool {
	return m.unit == o.unit && m.amount.Equal(o.amount)
}

// IsZero reports whether the magnitude is exactly zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsNegative reports whether the magnitude is below zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// IsPositive reports whether the magnitude is above zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

func (m Money) places() int32 {
	if m.unit == UnitKilogram {
		return kilogramPlaces
	}
	return currencyPlaces
}

// Rounded returns the magnitude rounded to the unit's persisted precision:
// 2 decimal places for currency, 3 for kilograms.
func (m Money) Rounded() decimal.Decimal {
	return m.amount.Round(m.places())
}

// Quantized reports whether the magnitude is exactly representable at the
// unit's persisted precision. Finer values would round independently at each
// write site and could drift by one unit in the last place.
func (m Money) Quantized() bool {
	return m.amount.Equal(m.Rounded())
}

// Canonical returns the stable "<amount> <unit>" serialization used for
// persistence and as checksum input. The amount is rendered at fixed
// precision so the form is byte-stable for identical values.
func (m Money) Canonical() string {
	return m.amount.StringFixed(m.places()) + " " + string(m.unit)
}

// String implements fmt.Stringer via the canonical form.
func (m Money) String() string { return m.Canonical() }

// MarshalJSON renders the canonical form, keeping audit snapshots byte-stable.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.Canonical() + `"`), nil
}

// UnmarshalJSON parses the canonical form.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
