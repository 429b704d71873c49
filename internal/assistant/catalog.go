// Package assistant routes commands onto the engine's operations. A fixed
// catalog names every action with its parameter schema; free text is
// translated onto the catalog by an LLM, and both paths end at the same
// dispatcher.
package assistant

import (
	"fmt"

	"bistro/internal/engine"
	"bistro/internal/models"
)

// ParamSpec documents one parameter of a catalog action.
type ParamSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description"`
}

// ActionSpec documents one catalog action.
type ActionSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
}

// Dispatcher executes catalog actions against an engine.
type Dispatcher struct {
	engine *engine.Engine
}

// NewDispatcher creates a dispatcher over an engine.
func NewDispatcher(eng *engine.Engine) *Dispatcher {
	return &Dispatcher{engine: eng}
}

// Catalog returns the full action catalog.
func (d *Dispatcher) Catalog() []ActionSpec {
	return []ActionSpec{
		{Name: "start_game", Description: "Start the game loop"},
		{Name: "stop_game", Description: "Stop the game loop"},
		{Name: "seat_customer", Description: "Seat a waiting customer at a table", Params: []ParamSpec{
			{Name: "customerId", Type: "string", Required: true, Description: "Customer to seat"},
			{Name: "tableId", Type: "string", Description: "Table to seat them at"},
		}},
		{Name: "take_order", Description: "Take a dish order from a seated customer", Params: []ParamSpec{
			{Name: "customerId", Type: "string", Required: true, Description: "Seated customer"},
			{Name: "dishId", Type: "string", Required: true, Description: "Menu dish"},
		}},
		{Name: "start_preparation", Description: "Start prepping an ingredient", Params: []ParamSpec{
			{Name: "ingredientId", Type: "string", Required: true, Description: "Ingredient to prep"},
			{Name: "action", Type: "string", Description: "Prep technique, defaults to chop"},
			{Name: "duration", Type: "number", Description: "Seconds of prep work"},
		}},
		{Name: "complete_preparation", Description: "Finish a prep task", Params: []ParamSpec{
			{Name: "taskId", Type: "string", Required: true, Description: "Prep task id"},
		}},
		{Name: "start_cooking", Description: "Start the next recipe step of an order", Params: []ParamSpec{
			{Name: "orderId", Type: "string", Required: true, Description: "Order to cook"},
		}},
		{Name: "complete_cooking", Description: "Take a cooking process off the heat", Params: []ParamSpec{
			{Name: "processId", Type: "string", Required: true, Description: "Cooking process id"},
		}},
		{Name: "start_plating", Description: "Begin plating an order", Params: []ParamSpec{
			{Name: "orderId", Type: "string", Required: true, Description: "Order to plate"},
		}},
		{Name: "add_plating_item", Description: "Add a component to a plate", Params: []ParamSpec{
			{Name: "taskId", Type: "string", Required: true, Description: "Plating task id"},
			{Name: "itemId", Type: "string", Required: true, Description: "Component ingredient id"},
		}},
		{Name: "add_garnish", Description: "Add a garnish to a plate", Params: []ParamSpec{
			{Name: "taskId", Type: "string", Required: true, Description: "Plating task id"},
			{Name: "garnishId", Type: "string", Required: true, Description: "Garnish id"},
		}},
		{Name: "complete_plating", Description: "Finish a plate", Params: []ParamSpec{
			{Name: "taskId", Type: "string", Required: true, Description: "Plating task id"},
		}},
		{Name: "serve_order", Description: "Serve a plated order to its customer", Params: []ParamSpec{
			{Name: "orderId", Type: "string", Required: true, Description: "Order to serve"},
		}},
		{Name: "rush_order", Description: "Flag an order as priority", Params: []ParamSpec{
			{Name: "orderId", Type: "string", Required: true, Description: "Order to rush"},
		}},
		{Name: "process_payment", Description: "Settle a served order", Params: []ParamSpec{
			{Name: "orderId", Type: "string", Required: true, Description: "Order to settle"},
		}},
		{Name: "purchase_ingredient", Description: "Buy stock for an ingredient", Params: []ParamSpec{
			{Name: "ingredientId", Type: "string", Required: true, Description: "Ingredient to buy"},
			{Name: "quantity", Type: "number", Required: true, Description: "Units to buy"},
		}},
		{Name: "consume_ingredient", Description: "Use stock of an ingredient", Params: []ParamSpec{
			{Name: "ingredientId", Type: "string", Required: true, Description: "Ingredient to use"},
			{Name: "quantity", Type: "number", Required: true, Description: "Units to use"},
		}},
		{Name: "queue_action", Description: "Queue a timed player action", Params: []ParamSpec{
			{Name: "name", Type: "string", Required: true, Description: "Action name"},
			{Name: "duration", Type: "number", Required: true, Description: "Base duration in seconds"},
			{Name: "targetId", Type: "string", Description: "Entity the action applies to"},
		}},
	}
}

// Execute runs a named catalog action. Unknown actions and missing
// parameters are expected failures, not errors.
func (d *Dispatcher) Execute(name string, params map[string]interface{}) engine.Result {
	p := paramReader{params: params}

	switch name {
	case "start_game":
		return d.engine.Start()
	case "stop_game":
		return d.engine.Stop()
	case "seat_customer":
		return d.engine.SeatCustomer(p.str("customerId"), p.str("tableId"))
	case "take_order":
		return d.engine.TakeOrder(p.str("customerId"), p.str("dishId"))
	case "start_preparation":
		action := models.StepAction(p.str("action"))
		if action == "" {
			action = models.ActionChop
		}
		duration := p.num("duration")
		if duration <= 0 {
			duration = 10
		}
		return d.engine.StartPreparation(p.str("ingredientId"), action, duration)
	case "complete_preparation":
		return d.engine.CompletePreparation(p.str("taskId"))
	case "start_cooking":
		return d.engine.StartCooking(p.str("orderId"))
	case "complete_cooking":
		return d.engine.CompleteCooking(p.str("processId"))
	case "start_plating":
		return d.engine.StartPlating(p.str("orderId"))
	case "add_plating_item":
		return d.engine.AddPlatingItem(p.str("taskId"), p.str("itemId"))
	case "add_garnish":
		return d.engine.AddGarnish(p.str("taskId"), p.str("garnishId"))
	case "complete_plating":
		return d.engine.CompletePlating(p.str("taskId"))
	case "serve_order":
		return d.engine.ServeOrder(p.str("orderId"))
	case "rush_order":
		return d.engine.RushOrder(p.str("orderId"))
	case "process_payment":
		return d.engine.ProcessPayment(p.str("orderId"))
	case "purchase_ingredient":
		return d.engine.PurchaseIngredient(p.str("ingredientId"), int(p.num("quantity")))
	case "consume_ingredient":
		return d.engine.ConsumeIngredient(p.str("ingredientId"), int(p.num("quantity")))
	case "queue_action":
		return d.engine.QueueAction(p.str("name"), p.num("duration"), p.str("targetId"))
	default:
		return engine.Result{Success: false, Message: fmt.Sprintf("unknown action %q", name)}
	}
}

type paramReader struct {
	params map[string]interface{}
}

func (p paramReader) str(key string) string {
	s, _ := p.params[key].(string)
	return s
}

func (p paramReader) num(key string) float64 {
	switch v := p.params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}
