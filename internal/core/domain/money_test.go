package domain_test

import (
	"testing"

	"github.com/govalues/decimal"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount, currency string) domain.Money {
	t.Helper()
	m, err := domain.ParseMoney(amount, currency)
	require.NoError(t, err)
	return m
}

func TestMoney_New(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expError error
	}{
		{name: "valid", amount: "10.50", currency: "USD"},
		{name: "zero", amount: "0", currency: "EUR"},
		{name: "negative amount", amount: "-1", currency: "USD", expError: domain.ErrValidation},
		{name: "short currency", amount: "1", currency: "US", expError: domain.ErrValidation},
		{name: "long currency", amount: "1", currency: "USDT", expError: domain.ErrValidation},
		{name: "lowercase currency", amount: "1", currency: "usd", expError: domain.ErrValidation},
		{name: "empty currency", amount: "1", currency: "", expError: domain.ErrValidation},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m, err := domain.ParseMoney(test.amount, test.currency)
			if test.expError != nil {
				assert.ErrorIs(t, err, test.expError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.currency, m.Currency())
			assert.Equal(t, 0, m.Amount().Cmp(decimal.MustParse(test.amount)))
		})
	}
}

func TestMoney_ParseMalformed(t *testing.T) {
	_, err := domain.ParseMoney("ten dollars", "USD")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_Add(t *testing.T) {
	sum, err := money(t, "10", "USD").Add(money(t, "5", "USD"))
	assert.NoError(t, err)
	assert.True(t, sum.Equal(money(t, "15", "USD")))

	_, err = money(t, "10", "USD").Add(money(t, "5", "EUR"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_Sub(t *testing.T) {
	diff, err := money(t, "10", "USD").Sub(money(t, "4", "USD"))
	assert.NoError(t, err)
	assert.True(t, diff.Equal(money(t, "6", "USD")))

	_, err = money(t, "5", "USD").Sub(money(t, "10", "USD"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = money(t, "10", "USD").Sub(money(t, "5", "EUR"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_Mul(t *testing.T) {
	product, err := money(t, "49.90", "USD").Mul(3)
	assert.NoError(t, err)
	assert.True(t, product.Equal(money(t, "149.70", "USD")))

	_, err = money(t, "1", "USD").Mul(-2)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMoney_Equal(t *testing.T) {
	assert.True(t, money(t, "10", "USD").Equal(money(t, "10.00", "USD")))
	assert.False(t, money(t, "10", "USD").Equal(money(t, "10", "EUR")))
	assert.False(t, money(t, "10", "USD").Equal(money(t, "11", "USD")))
}
