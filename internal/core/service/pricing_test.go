package service_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/mirstone/ordermart/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricing(t *testing.T) {
	pricing := service.NewPricing()
	order := readyOrder(t) // one line, $50.00 x2
	rate := decimal.MustParse("0.1")

	subtotal, err := pricing.Subtotal(order)
	require.NoError(t, err)
	assert.Equal(t, 0, subtotal.Amount().Cmp(decimal.MustParse("100")))

	tax, err := pricing.Tax(order, rate)
	require.NoError(t, err)
	assert.Equal(t, 0, tax.Amount().Cmp(decimal.MustParse("10")))
	assert.Equal(t, "USD", tax.Currency())

	grand, err := pricing.GrandTotal(order, rate)
	require.NoError(t, err)
	assert.Equal(t, 0, grand.Amount().Cmp(decimal.MustParse("110")))
}

func TestPricing_EmptyOrder(t *testing.T) {
	pricing := service.NewPricing()
	order, err := domain.NewOrder("o1", "c1", testNow)
	require.NoError(t, err)

	tax, err := pricing.Tax(order, decimal.MustParse("0.2"))
	require.NoError(t, err)
	assert.True(t, tax.IsZero())

	grand, err := pricing.GrandTotal(order, decimal.MustParse("0.2"))
	require.NoError(t, err)
	assert.True(t, grand.IsZero())
}

func TestPricing_NegativeRate(t *testing.T) {
	pricing := service.NewPricing()
	order := readyOrder(t)

	_, err := pricing.Tax(order, decimal.MustParse("-0.1"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "tax rate cannot be negative")
}
