package unitconv_test

import (
	"testing"

	"github.com/Gha-mus/workflu-business-management-sub007/internal/core/domain"
	"github.com/Gha-mus/workflu-business-management-sub007/internal/utils/unitconv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kg(s string) domain.Money {
	return domain.MustMoney(s, domain.UnitKilogram)
}

func TestKgToCartons(t *testing.T) {
	tests := []struct {
		name   string
		kg     string
		carton domain.CartonType
		want   string
	}{
		{name: "exact C20", kg: "100", carton: domain.CartonC20, want: "5"},
		{name: "fractional C20", kg: "30", carton: domain.CartonC20, want: "1.5"},
		{name: "exact C8", kg: "40", carton: domain.CartonC8, want: "5"},
		{name: "fractional C8", kg: "20", carton: domain.CartonC8, want: "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unitconv.KgToCartons(kg(tt.kg), tt.carton)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestKgToCartons_Errors(t *testing.T) {
	_, err := unitconv.KgToCartons(domain.MustMoney("10", "USD"), domain.CartonC20)
	assert.ErrorIs(t, err, domain.ErrUnitMismatch)

	_, err = unitconv.KgToCartons(kg("10"), domain.CartonType("C11"))
	assert.ErrorIs(t, err, unitconv.ErrUnknownCarton)
}

func TestCartonsToKg(t *testing.T) {
	got, err := unitconv.CartonsToKg(decimal.RequireFromString("2.5"), domain.CartonC20)
	require.NoError(t, err)
	assert.Equal(t, "50.000 kg", got.Canonical())

	got, err = unitconv.CartonsToKg(decimal.NewFromInt(3), domain.CartonC8)
	require.NoError(t, err)
	assert.Equal(t, "24.000 kg", got.Canonical())
}

func TestConvertPricePerUnit(t *testing.T) {
	perKg := domain.MustMoney("2.00", "USD")

	tests := []struct {
		name  string
		price domain.Money
		from  unitconv.PricingUnit
		to    unitconv.PricingUnit
		want  string
	}{
		{name: "kg to C20", price: perKg, from: unitconv.PerKg, to: unitconv.PerC20, want: "40.00 USD"},
		{name: "kg to C8", price: perKg, from: unitconv.PerKg, to: unitconv.PerC8, want: "16.00 USD"},
		{name: "C20 to C8", price: domain.MustMoney("40.00", "USD"), from: unitconv.PerC20, to: unitconv.PerC8, want: "16.00 USD"},
		{name: "C8 to C20", price: domain.MustMoney("16.00", "USD"), from: unitconv.PerC8, to: unitconv.PerC20, want: "40.00 USD"},
		{name: "identity", price: perKg, from: unitconv.PerKg, to: unitconv.PerKg, want: "2.00 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := unitconv.ConvertPricePerUnit(tt.price, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Canonical())
		})
	}

	_, err := unitconv.ConvertPricePerUnit(perKg, unitconv.PricingUnit("bag"), unitconv.PerKg)
	assert.ErrorIs(t, err, unitconv.ErrUnknownPricingUnit)
}

func TestCheckAvailability_Sufficient(t *testing.T) {
	avail, err := unitconv.CheckAvailability(kg("100"), decimal.NewFromInt(5), domain.CartonC20)
	require.NoError(t, err)
	assert.True(t, avail.Sufficient)
	assert.Equal(t, "100.000 kg", avail.RequestedKg.Canonical())
	assert.True(t, avail.ShortfallKg.IsZero())
}

func TestCheckAvailability_Shortfall(t *testing.T) {
	avail, err := unitconv.CheckAvailability(kg("90"), decimal.NewFromInt(5), domain.CartonC20)
	require.NoError(t, err)
	assert.False(t, avail.Sufficient)
	assert.Equal(t, "10.000 kg", avail.ShortfallKg.Canonical())
	assert.True(t, avail.ShortfallCartons.Equal(decimal.RequireFromString("0.5")), "got %s", avail.ShortfallCartons)
}

func TestCheckAvailability_UnknownCarton(t *testing.T) {
	_, err := unitconv.CheckAvailability(kg("90"), decimal.NewFromInt(5), domain.CartonType("PALLET"))
	assert.ErrorIs(t, err, unitconv.ErrUnknownCarton)
}
