package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the possible states of an order. Transitions are
// forward-only: received -> cooking -> plated -> served.
type OrderStatus string

const (
	OrderReceived OrderStatus = "received"
	OrderCooking  OrderStatus = "cooking"
	OrderPlated   OrderStatus = "plated"
	OrderServed   OrderStatus = "served"
)

// statusRank orders the statuses for monotonicity checks.
var statusRank = map[OrderStatus]int{
	OrderReceived: 0,
	OrderCooking:  1,
	OrderPlated:   2,
	OrderServed:   3,
}

// Order is one customer's request for a dish.
type Order struct {
	ID             string      `json:"id"`
	CustomerID     string      `json:"customerId"`
	DishID         string      `json:"dishId"`
	Status         OrderStatus `json:"status"`
	StartTime      time.Time   `json:"startTime"`
	CompletionTime *time.Time  `json:"completionTime,omitempty"`
	QualityScore   float64     `json:"qualityScore"`
	Tip            float64     `json:"tip"`
	IsPriority     bool        `json:"isPriority"`
	StepsCompleted int         `json:"stepsCompleted"`
}

// OrderOption overrides a default field on a new Order.
type OrderOption func(*Order)

func WithOrderID(id string) OrderOption {
	return func(o *Order) { o.ID = id }
}

func ForCustomer(customerID string) OrderOption {
	return func(o *Order) { o.CustomerID = customerID }
}

func ForDish(dishID string) OrderOption {
	return func(o *Order) { o.DishID = dishID }
}

func WithStartTime(t time.Time) OrderOption {
	return func(o *Order) { o.StartTime = t }
}

// NewOrder creates a received order.
func NewOrder(opts ...OrderOption) *Order {
	o := &Order{
		ID:     uuid.NewString(),
		Status: OrderReceived,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AdvanceTo moves the order forward to the given status. Backward or
// repeated transitions are rejected.
func (o *Order) AdvanceTo(status OrderStatus) bool {
	to, ok := statusRank[status]
	if !ok {
		return false
	}
	if to <= statusRank[o.Status] {
		return false
	}
	o.Status = status
	return true
}
