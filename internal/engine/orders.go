package engine

import (
	"fmt"

	"bistro/internal/events"
	"bistro/internal/models"
)

// OrderStatusView is the read-only projection CheckOrderStatus returns.
type OrderStatusView struct {
	OrderID     string             `json:"orderId"`
	Status      models.OrderStatus `json:"status"`
	ElapsedTime float64            `json:"elapsedTime"`
	IsPriority  bool               `json:"isPriority"`
}

// TakeOrder opens an order for a seated customer. A missing dish id is a
// hard failure, not a silent fallback.
func (e *Engine) TakeOrder(customerID, dishID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.takeOrder(customerID, dishID)
}

func (e *Engine) takeOrder(customerID, dishID string) Result {
	c, _ := e.Restaurant.ActiveCustomer(customerID)
	if c == nil {
		return fail(fmt.Sprintf("customer %s not found at a table", customerID))
	}
	if c.OrderID != "" {
		return fail(fmt.Sprintf("customer %s already has an order", customerID))
	}
	if _, exists := e.Restaurant.Menu[dishID]; !exists {
		return fail(fmt.Sprintf("dish %s does not exist", dishID))
	}

	order := models.NewOrder(
		models.ForCustomer(customerID),
		models.ForDish(dishID),
		models.WithStartTime(e.now()),
	)
	c.OrderID = order.ID
	e.Restaurant.ActiveOrders = append(e.Restaurant.ActiveOrders, order)

	e.publish(events.OrderReceived, map[string]interface{}{
		"orderId":    order.ID,
		"customerId": customerID,
		"dishId":     dishID,
	})
	return ok(map[string]interface{}{"orderId": order.ID})
}

// ServeOrder delivers a plated order to its customer. Satisfaction starts
// at the cook quality and loses one point per second the customer waited.
// CompletionTime is stamped exactly once, here.
func (e *Engine) ServeOrder(orderID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.serveOrder(orderID)
}

func (e *Engine) serveOrder(orderID string) Result {
	order, _ := e.Restaurant.ActiveOrder(orderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s not found", orderID))
	}
	if order.Status != models.OrderPlated {
		return fail(fmt.Sprintf("order %s is %s, not plated", orderID, order.Status))
	}

	now := e.now()
	waitSeconds := now.Sub(order.StartTime).Seconds()
	satisfaction := clamp(order.QualityScore-waitSeconds, 0, 100)

	order.AdvanceTo(models.OrderServed)
	served := now
	order.CompletionTime = &served

	if c, _ := e.Restaurant.ActiveCustomer(order.CustomerID); c != nil {
		c.Status = models.CustomerServed
		e.updateCustomerSatisfaction(c.ID, satisfaction)
	}
	e.Game.Metrics.CustomersServed++

	e.publish(events.OrderServed, map[string]interface{}{
		"orderId":      orderID,
		"customerId":   order.CustomerID,
		"satisfaction": satisfaction,
	})
	return ok(map[string]interface{}{
		"orderId":      orderID,
		"satisfaction": satisfaction,
	})
}

// CheckOrderStatus returns a projection of an order, or nil when unknown.
// It is read-only and never publishes.
func (e *Engine) CheckOrderStatus(orderID string) *OrderStatusView {
	e.mu.Lock()
	defer e.mu.Unlock()

	order := e.findOrder(orderID)
	if order == nil {
		return nil
	}
	end := e.now()
	if order.CompletionTime != nil {
		end = *order.CompletionTime
	}
	return &OrderStatusView{
		OrderID:     order.ID,
		Status:      order.Status,
		ElapsedTime: end.Sub(order.StartTime).Seconds(),
		IsPriority:  order.IsPriority,
	}
}

// RushOrder flags an order for display priority. The engine itself never
// reorders work because of the flag; it exists for queue-sorting consumers.
func (e *Engine) RushOrder(orderID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	order := e.findOrder(orderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s not found", orderID))
	}
	order.IsPriority = true

	e.publish(events.OrderRushed, map[string]interface{}{
		"orderId": orderID,
	})
	return ok(map[string]interface{}{"orderId": orderID, "isPriority": true})
}

// findOrder looks across active and completed orders.
func (e *Engine) findOrder(orderID string) *models.Order {
	if o, _ := e.Restaurant.ActiveOrder(orderID); o != nil {
		return o
	}
	for _, o := range e.Restaurant.CompletedOrders {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}

// abandonOrder drops a departing customer's in-flight order without
// archiving it as completed.
func (e *Engine) abandonOrder(orderID string) {
	if _, idx := e.Restaurant.ActiveOrder(orderID); idx >= 0 {
		e.Restaurant.ActiveOrders = append(e.Restaurant.ActiveOrders[:idx], e.Restaurant.ActiveOrders[idx+1:]...)
	}
}
