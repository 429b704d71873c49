package models

import "github.com/google/uuid"

// CustomerStatus tracks a customer through the visit lifecycle.
type CustomerStatus string

const (
	CustomerWaiting CustomerStatus = "waiting"
	CustomerSeated  CustomerStatus = "seated"
	CustomerServed  CustomerStatus = "served"
	CustomerLeft    CustomerStatus = "left"
)

// Customer is a guest either queued at the door or seated at a table.
// Patience is clamped at 0; reaching 0 removes the customer.
type Customer struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Patience     float64        `json:"patience"`
	Status       CustomerStatus `json:"status"`
	Satisfaction float64        `json:"satisfaction"`
	Tip          float64        `json:"tip"`
	TableID      string         `json:"tableId,omitempty"`
	OrderID      string         `json:"orderId,omitempty"`
}

// CustomerOption overrides a default field on a new Customer.
type CustomerOption func(*Customer)

func WithCustomerID(id string) CustomerOption {
	return func(c *Customer) { c.ID = id }
}

func WithPatience(p float64) CustomerOption {
	return func(c *Customer) { c.Patience = p }
}

func WithCustomerName(name string) CustomerOption {
	return func(c *Customer) { c.Name = name }
}

// NewCustomer creates a waiting customer with a full patience baseline.
func NewCustomer(opts ...CustomerOption) *Customer {
	c := &Customer{
		ID:       uuid.NewString(),
		Name:     "Guest",
		Patience: 100,
		Status:   CustomerWaiting,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
