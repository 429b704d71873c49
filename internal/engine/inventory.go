package engine

import (
	"fmt"
	"math"

	"bistro/internal/events"
	"bistro/internal/models"
)

// PurchaseIngredient buys qty units of an ingredient. Fails without any
// mutation when the ingredient is unknown or funds are insufficient.
func (e *Engine) PurchaseIngredient(ingredientID string, qty int) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.purchaseIngredient(ingredientID, qty)
}

func (e *Engine) purchaseIngredient(ingredientID string, qty int) Result {
	if qty <= 0 {
		return fail("quantity must be positive")
	}
	ing, exists := e.Restaurant.Inventory[ingredientID]
	if !exists {
		return fail(fmt.Sprintf("ingredient %s not found", ingredientID))
	}

	totalCost := ing.Cost * float64(qty)
	if totalCost > e.Restaurant.Funds {
		return fail(fmt.Sprintf("insufficient funds: need %.2f, have %.2f", totalCost, e.Restaurant.Funds))
	}

	e.Restaurant.Funds -= totalCost
	ing.Quantity += qty

	e.publish(events.IngredientPurchased, map[string]interface{}{
		"ingredientId": ingredientID,
		"quantity":     qty,
		"cost":         totalCost,
	})
	e.publish(events.FundsChanged, map[string]interface{}{
		"funds": e.Restaurant.Funds,
		"delta": -totalCost,
	})
	return ok(map[string]interface{}{
		"ingredientId": ingredientID,
		"quantity":     ing.Quantity,
		"funds":        e.Restaurant.Funds,
	})
}

// ConsumeIngredient removes qty units from stock. Fails without mutation
// when the ingredient is unknown or stock is short.
func (e *Engine) ConsumeIngredient(ingredientID string, qty int) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.consumeIngredient(ingredientID, qty)
}

func (e *Engine) consumeIngredient(ingredientID string, qty int) Result {
	if qty <= 0 {
		return fail("quantity must be positive")
	}
	ing, exists := e.Restaurant.Inventory[ingredientID]
	if !exists {
		return fail(fmt.Sprintf("ingredient %s not found", ingredientID))
	}
	if ing.Quantity < qty {
		return fail(fmt.Sprintf("insufficient quantity of %s: have %d, need %d", ing.Name, ing.Quantity, qty))
	}

	ing.Quantity -= qty
	e.publish(events.IngredientUsed, map[string]interface{}{
		"ingredientId": ingredientID,
		"quantity":     qty,
		"remaining":    ing.Quantity,
	})
	return ok(map[string]interface{}{
		"ingredientId": ingredientID,
		"remaining":    ing.Quantity,
	})
}

// ProcessPayment settles a served order. The tip rewards quality and speed:
// a perfect plate served within the first moments tips 100% of the base
// price, dropping to half-weighting after a minute on the pass. The settled
// customer leaves the floor and their table frees up.
func (e *Engine) ProcessPayment(orderID string) Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.processPayment(orderID)
}

func (e *Engine) processPayment(orderID string) Result {
	order, _ := e.Restaurant.ActiveOrder(orderID)
	if order == nil {
		return fail(fmt.Sprintf("order %s not found", orderID))
	}
	if order.Status != models.OrderServed {
		return fail(fmt.Sprintf("order %s is %s, not served", orderID, order.Status))
	}
	dish, exists := e.Restaurant.Menu[order.DishID]
	if !exists {
		return fail(fmt.Sprintf("dish %s referenced by order %s does not exist", order.DishID, orderID))
	}

	completion := e.now()
	if order.CompletionTime != nil {
		completion = *order.CompletionTime
	}
	elapsedMs := float64(completion.Sub(order.StartTime).Milliseconds())

	qualityMultiplier := math.Max(0, order.QualityScore) / 100
	speedMultiplier := math.Max(0.5, 1-elapsedMs/60000)
	tipPercentage := (qualityMultiplier + speedMultiplier) / 2
	tip := math.Round(dish.BasePrice * tipPercentage)
	total := dish.BasePrice + tip

	e.Restaurant.Funds += total
	order.Tip = tip
	e.Restaurant.ArchiveOrder(orderID)
	e.removeCustomer(order.CustomerID)
	e.recordCompletedOrder(order)

	e.publish(events.PaymentProcessed, map[string]interface{}{
		"orderId":    orderID,
		"customerId": order.CustomerID,
		"dishId":     order.DishID,
		"quality":    order.QualityScore,
		"tip":        tip,
		"total":      total,
	})
	e.publish(events.OrderCompleted, map[string]interface{}{
		"orderId": orderID,
		"quality": order.QualityScore,
		"tip":     tip,
	})
	e.publish(events.FundsChanged, map[string]interface{}{
		"funds": e.Restaurant.Funds,
		"delta": total,
	})
	return ok(map[string]interface{}{
		"orderId": orderID,
		"tip":     tip,
		"total":   total,
		"funds":   e.Restaurant.Funds,
	})
}

// recordCompletedOrder rolls a settled order into the session metrics.
func (e *Engine) recordCompletedOrder(order *models.Order) {
	m := &e.Game.Metrics
	m.OrdersCompleted++
	e.qualitySum += order.QualityScore
	m.AverageQuality = e.qualitySum / m.OrdersCompleted
}

// CalculateDailyExpenses deducts the fixed daily operating cost. Funds may
// go negative; the tick loop's end check handles that.
func (e *Engine) CalculateDailyExpenses() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	amount := e.tuning.DailyExpense
	e.Restaurant.Funds -= amount
	e.publish(events.FundsChanged, map[string]interface{}{
		"funds": e.Restaurant.Funds,
		"delta": -amount,
	})
	return amount
}
