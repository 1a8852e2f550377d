package domain

import "strings"

// Address is an immutable postal address. Build it with NewAddress;
// two addresses are equal when all five fields match.
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

func NewAddress(street, city, state, postalCode, country string) (Address, error) {
	fields := map[string]string{
		"street":      street,
		"city":        city,
		"state":       state,
		"postal code": postalCode,
		"country":     country,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return Address{}, validationError("address %s cannot be empty", name)
		}
	}
	return Address{
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
	}, nil
}

func (a Address) Equal(other Address) bool {
	return a == other
}
