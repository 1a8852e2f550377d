package domain

import (
	"github.com/govalues/decimal"
)

// Money is an immutable amount in a single currency. The amount is never
// negative. All arithmetic returns a new value and rejects operations
// across currencies.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNeg() {
		return Money{}, validationError("money amount cannot be negative")
	}
	if !validCurrency(currency) {
		return Money{}, validationError("currency must be a 3-letter code, got %q", currency)
	}
	return Money{amount: amount, currency: currency}, nil
}

// ParseMoney builds Money from a decimal string such as "49.90".
func ParseMoney(amount string, currency string) (Money, error) {
	d, err := decimal.Parse(amount)
	if err != nil {
		return Money{}, validationError("malformed money amount %q", amount)
	}
	return NewMoney(d, currency)
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

func (m Money) Amount() decimal.Decimal { return m.amount }

func (m Money) Currency() string { return m.currency }

func (m Money) IsZero() bool { return m.amount.IsZero() }

func (m Money) IsPositive() bool { return m.amount.IsPos() }

func (m Money) Add(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	sum, err := m.amount.Add(other.amount)
	if err != nil {
		return Money{}, validationError("money addition failed: %v", err)
	}
	return Money{amount: sum, currency: m.currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.requireSameCurrency(other); err != nil {
		return Money{}, err
	}
	diff, err := m.amount.Sub(other.amount)
	if err != nil {
		return Money{}, validationError("money subtraction failed: %v", err)
	}
	if diff.IsNeg() {
		return Money{}, validationError("money subtraction result cannot be negative")
	}
	return Money{amount: diff, currency: m.currency}, nil
}

// Mul multiplies the amount by a non-negative integer factor, typically
// an item quantity.
func (m Money) Mul(factor int) (Money, error) {
	if factor < 0 {
		return Money{}, validationError("money factor cannot be negative")
	}
	f, err := decimal.New(int64(factor), 0)
	if err != nil {
		return Money{}, validationError("money factor out of range: %v", err)
	}
	product, err := m.amount.Mul(f)
	if err != nil {
		return Money{}, validationError("money multiplication failed: %v", err)
	}
	return Money{amount: product, currency: m.currency}, nil
}

func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Cmp(other.amount) == 0
}

func (m Money) String() string {
	if m.currency == "" {
		return m.amount.String()
	}
	return m.amount.String() + " " + m.currency
}

func (m Money) requireSameCurrency(other Money) error {
	if m.currency != other.currency {
		return validationError("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return nil
}
