package domain

import "strings"

// Typed identifiers keep order, customer and product ids from being
// mixed up at call sites. Equality is plain value equality.

type OrderID string

func NewOrderID(value string) (OrderID, error) {
	if strings.TrimSpace(value) == "" {
		return "", validationError("order id cannot be empty")
	}
	return OrderID(value), nil
}

func (id OrderID) String() string { return string(id) }

type CustomerID string

func NewCustomerID(value string) (CustomerID, error) {
	if strings.TrimSpace(value) == "" {
		return "", validationError("customer id cannot be empty")
	}
	return CustomerID(value), nil
}

func (id CustomerID) String() string { return string(id) }

type ProductID string

func NewProductID(value string) (ProductID, error) {
	if strings.TrimSpace(value) == "" {
		return "", validationError("product id cannot be empty")
	}
	return ProductID(value), nil
}

func (id ProductID) String() string { return string(id) }
