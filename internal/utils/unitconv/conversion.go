// Package unitconv converts between kilograms and the fixed-weight carton
// units used for display and ordering. Every conversion routes through the
// decimal Money type; nothing that will be persisted or compared for
// sufficiency ever touches native floating point.
package unitconv

import (
	"errors"
	"fmt"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrUnknownCarton is returned for a carton type other than C20 or C8.
var ErrUnknownCarton = errors.New("unknown carton type")

// ErrUnknownPricingUnit is returned for a pricing unit other than kg/C8/C20.
var ErrUnknownPricingUnit = errors.New("unknown pricing unit")

// Carton weights are fixed constants of the business: one C20 carton holds
// 20 kg, one C8 carton holds 8 kg (so 1 C20 = 2.5 C8 and 1 C8 = 0.4 C20).
var (
	cartonC20Kg = decimal.NewFromInt(20)
	cartonC8Kg  = decimal.NewFromInt(8)
)

// CartonWeightKg returns the kilogram weight of one carton of the given type.
func CartonWeightKg(ct domain.CartonType) (decimal.Decimal, error) {
	switch ct {
	case domain.CartonC20:
		return cartonC20Kg, nil
	case domain.CartonC8:
		return cartonC8Kg, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownCarton, ct)
	}
}

// KgToCartons converts a kilogram quantity into carton units.
func KgToCartons(kg domain.Money, ct domain.CartonType) (decimal.Decimal, error) {
	if kg.Unit() != domain.UnitKilogram {
		return decimal.Decimal{}, fmt.Errorf("%w: expected kg, got %s", domain.ErrUnitMismatch, kg.Unit())
	}
	weight, err := CartonWeightKg(ct)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return kg.Amount().Div(weight), nil
}

// CartonsToKg converts a carton count into a kilogram quantity.
func CartonsToKg(cartons decimal.Decimal, ct domain.CartonType) (domain.Money, error) {
	weight, err := CartonWeightKg(ct)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoneyFromDecimal(cartons.Mul(weight), domain.UnitKilogram), nil
}

// PricingUnit names the unit a price is quoted per.
type PricingUnit string

const (
	PerKg  PricingUnit = "kg"
	PerC8  PricingUnit = "C8"
	PerC20 PricingUnit = "C20"
)

func unitWeightKg(u PricingUnit) (decimal.Decimal, error) {
	switch u {
	case PerKg:
		return decimal.NewFromInt(1), nil
	case PerC8:
		return cartonC8Kg, nil
	case PerC20:
		return cartonC20Kg, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownPricingUnit, u)
	}
}

// ConvertPricePerUnit re-quotes a price among kg/C8/C20. Price-per-kg is the
// canonical intermediate: converting C8 to C20 divides down to per-kg first
// and scales back up, so chained conversions stay exact.
func ConvertPricePerUnit(price domain.Money, from, to PricingUnit) (domain.Money, error) {
	fromWeight, err := unitWeightKg(from)
	if err != nil {
		return domain.Money{}, err
	}
	toWeight, err := unitWeightKg(to)
	if err != nil {
		return domain.Money{}, err
	}
	perKg, err := price.Div(fromWeight)
	if err != nil {
		return domain.Money{}, err
	}
	return perKg.Mul(toWeight), nil
}

// Availability is the result of a stock sufficiency check for a requested
// carton quantity. On shortfall both the kilogram and the carton deficit are
// reported so callers can surface either unit.
type Availability struct {
	Sufficient       bool
	RequestedKg      domain.Money
	AvailableKg      domain.Money
	ShortfallKg      domain.Money
	ShortfallCartons decimal.Decimal
}

// CheckAvailability reports whether availableKg covers the requested number
// of cartons of the given type.
func CheckAvailability(availableKg domain.Money, requestedCartons decimal.Decimal, ct domain.CartonType) (Availability, error) {
	requestedKg, err := CartonsToKg(requestedCartons, ct)
	if err != nil {
		return Availability{}, err
	}
	if availableKg.Unit() != domain.UnitKilogram {
		return Availability{}, fmt.Errorf("%w: expected kg, got %s", domain.ErrUnitMismatch, availableKg.Unit())
	}

	result := Availability{
		RequestedKg: requestedKg,
		AvailableKg: availableKg,
		ShortfallKg: domain.ZeroMoney(domain.UnitKilogram),
	}

	enough, err := availableKg.GreaterThanOrEqual(requestedKg)
	if err != nil {
		return Availability{}, err
	}
	if enough {
		result.Sufficient = true
		return result, nil
	}

	shortKg, err := requestedKg.Sub(availableKg)
	if err != nil {
		return Availability{}, err
	}
	shortCartons, err := KgToCartons(shortKg, ct)
	if err != nil {
		return Availability{}, err
	}
	result.ShortfallKg = shortKg
	result.ShortfallCartons = shortCartons
	return result, nil
}
