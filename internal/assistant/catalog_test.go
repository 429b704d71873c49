package assistant

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/engine"
	"bistro/internal/models"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *engine.Engine) {
	t.Helper()

	restaurant := models.NewRestaurant(
		models.WithFunds(500),
		models.WithMenu(models.NewDish("dish_soup",
			models.WithBasePrice(20),
			models.WithRecipe(models.Recipe{Steps: []models.CookingStep{
				{IngredientIDs: []string{"ing_tomato"}, EquipmentType: models.StationCooking, Duration: 20, Action: models.ActionBoil},
			}}),
		)),
		models.WithInventory(&models.Ingredient{ID: "ing_tomato", Name: "Tomato", Quantity: 5, Cost: 2}),
	)
	eng := engine.New(
		engine.WithRestaurant(restaurant),
		engine.WithRNG(rand.New(rand.NewSource(1))),
		engine.WithClock(func() time.Time { return time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC) }),
	)
	return NewDispatcher(eng), eng
}

func TestCatalogCoversEveryDispatchableAction(t *testing.T) {
	d, _ := newTestDispatcher(t)

	for _, spec := range d.Catalog() {
		res := d.Execute(spec.Name, map[string]interface{}{})
		// Every catalog name must route somewhere; with empty params most
		// actions fail on lookups, never on an unknown action.
		assert.NotContains(t, res.Message, "unknown action", "catalog action %s is not dispatched", spec.Name)
	}
}

func TestExecuteUnknownActionFails(t *testing.T) {
	d, _ := newTestDispatcher(t)
	res := d.Execute("paint_the_walls", nil)
	require.False(t, res.Success)
	assert.Contains(t, res.Message, "unknown action")
}

func TestExecuteDrivesTheEngine(t *testing.T) {
	d, eng := newTestDispatcher(t)

	c := eng.GenerateCustomer()
	res := d.Execute("seat_customer", map[string]interface{}{"customerId": c.ID, "tableId": "t1"})
	require.True(t, res.Success)

	res = d.Execute("take_order", map[string]interface{}{"customerId": c.ID, "dishId": "dish_soup"})
	require.True(t, res.Success)
	orderID := res.Data["orderId"].(string)

	res = d.Execute("start_cooking", map[string]interface{}{"orderId": orderID})
	require.True(t, res.Success)

	res = d.Execute("purchase_ingredient", map[string]interface{}{"ingredientId": "ing_tomato", "quantity": float64(3)})
	require.True(t, res.Success)
}

func TestHandleDirectFormWithoutModel(t *testing.T) {
	d, eng := newTestDispatcher(t)
	a := New(nil, d)

	c := eng.GenerateCustomer()
	res, err := a.Handle(context.Background(), `seat_customer {"customerId": "`+c.ID+`", "tableId": "t1"}`)
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestHandleFreeTextWithoutModelFails(t *testing.T) {
	d, _ := newTestDispatcher(t)
	a := New(nil, d)

	res, err := a.Handle(context.Background(), "please seat the next guest")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "no model configured")
}

func TestParseDirect(t *testing.T) {
	inv, ok := parseDirect("stop_game")
	require.True(t, ok)
	assert.Equal(t, "stop_game", inv.Action)
	assert.Empty(t, inv.Params)

	inv, ok = parseDirect(`rush_order {"orderId": "o1"}`)
	require.True(t, ok)
	assert.Equal(t, "o1", inv.Params["orderId"])

	_, ok = parseDirect("Seat the guest at table two")
	assert.False(t, ok, "prose is not a direct command")

	_, ok = parseDirect(`start_cooking {broken json`)
	assert.False(t, ok)
}

func TestParseInvocationToleratesProse(t *testing.T) {
	inv, err := parseInvocation("Sure, here you go:\n```json\n{\"action\": \"start_game\", \"params\": {}}\n```")
	require.NoError(t, err)
	assert.Equal(t, "start_game", inv.Action)
	require.NotNil(t, inv.Params)

	_, err = parseInvocation("I cannot help with that.")
	require.Error(t, err)

	_, err = parseInvocation(`{"params": {}}`)
	require.Error(t, err, "a response naming no action is rejected")
}
