package service

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/mirstone/ordermart/internal/core/domain"
)

// Pricing is a stateless domain service for cross-aggregate money
// calculations. It reads the order and returns new Money values; it
// never writes into the aggregate.
type Pricing struct{}

func NewPricing() Pricing { return Pricing{} }

func (Pricing) Subtotal(order *domain.Order) (domain.Money, error) {
	return order.Total()
}

// Tax computes the tax due on an order at the given fractional rate,
// e.g. 0.19 for 19%.
func (p Pricing) Tax(order *domain.Order, rate decimal.Decimal) (domain.Money, error) {
	if rate.IsNeg() {
		return domain.Money{}, fmt.Errorf("%w: tax rate cannot be negative, got %s",
			domain.ErrValidation, rate)
	}
	subtotal, err := order.Total()
	if err != nil {
		return domain.Money{}, err
	}
	if subtotal.IsZero() {
		return subtotal, nil
	}
	taxed, err := subtotal.Amount().Mul(rate)
	if err != nil {
		return domain.Money{}, err
	}
	return domain.NewMoney(taxed, subtotal.Currency())
}

func (p Pricing) GrandTotal(order *domain.Order, rate decimal.Decimal) (domain.Money, error) {
	subtotal, err := p.Subtotal(order)
	if err != nil {
		return domain.Money{}, err
	}
	tax, err := p.Tax(order, rate)
	if err != nil {
		return domain.Money{}, err
	}
	if subtotal.IsZero() {
		return subtotal, nil
	}
	return subtotal.Add(tax)
}
