package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/events"
	"bistro/internal/models"
)

// testClock is a manually advanced time source.
type testClock struct {
	t time.Time
}

func newTestClock() *testClock {
	return &testClock{t: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testMenu() []*models.Dish {
	return []*models.Dish{
		models.NewDish("dish_soup",
			models.WithDishName("Tomato Soup"),
			models.WithBasePrice(20),
			models.WithRecipe(models.Recipe{Steps: []models.CookingStep{
				{IngredientIDs: []string{"ing_tomato"}, EquipmentType: models.StationCooking, Duration: 20, Action: models.ActionBoil},
				{IngredientIDs: []string{"ing_basil"}, EquipmentType: models.StationPlating, Duration: 5, Action: models.ActionPlate},
			}}),
		),
	}
}

func testInventory() []*models.Ingredient {
	return []*models.Ingredient{
		{ID: "ing_tomato", Name: "Tomato", Category: models.CategoryProduce, Quantity: 5, Cost: 2},
		{ID: "ing_basil", Name: "Basil", Category: models.CategorySpices, Quantity: 5, Cost: 0.5},
	}
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *testClock) {
	t.Helper()

	clock := newTestClock()
	restaurant := models.NewRestaurant(
		models.WithFunds(500),
		models.WithCustomerCapacity(3),
		models.WithMenu(testMenu()...),
		models.WithInventory(testInventory()...),
	)
	base := []Option{
		WithClock(clock.Now),
		WithRNG(rand.New(rand.NewSource(1))),
		WithRestaurant(restaurant),
	}
	return New(append(base, opts...)...), clock
}

// seatWithOrder walks a fresh customer to a table with an open order and
// returns the pair.
func seatWithOrder(t *testing.T, e *Engine) (*models.Customer, *models.Order) {
	t.Helper()

	c := e.GenerateCustomer()
	require.True(t, e.SeatCustomer(c.ID, "table_1").Success)
	res := e.TakeOrder(c.ID, "dish_soup")
	require.True(t, res.Success)

	order, _ := e.Restaurant.ActiveOrder(res.Data["orderId"].(string))
	require.NotNil(t, order)
	return c, order
}

// collect subscribes a recorder for one event name.
func collect(bus *events.Bus, name string) *[]map[string]interface{} {
	var got []map[string]interface{}
	bus.Subscribe(name, func(p map[string]interface{}) {
		got = append(got, p)
	})
	return &got
}

func TestResetPreservesMenuAndInventory(t *testing.T) {
	e, _ := newTestEngine(t)

	c := e.GenerateCustomer()
	require.True(t, e.SeatCustomer(c.ID, "t1").Success)
	e.Restaurant.Funds = 123

	require.True(t, e.Reset().Success)

	require.Equal(t, models.PhasePreGame, e.Game.Phase)
	require.Empty(t, e.Restaurant.ActiveCustomers)
	require.Empty(t, e.Restaurant.CustomerQueue)
	require.Contains(t, e.Restaurant.Menu, "dish_soup")
	require.Contains(t, e.Restaurant.Inventory, "ing_tomato")
	require.Equal(t, float64(500), e.Restaurant.Funds)
}

func TestResetRestoresConfiguredBaseline(t *testing.T) {
	kitchen := models.NewKitchen([]*models.Equipment{
		models.NewEquipment(models.WithEquipmentID("grill_1"), models.OfStationType(models.StationCooking)),
		models.NewEquipment(models.WithEquipmentID("pass_1"), models.OfStationType(models.StationPlating)),
	})
	e, _ := newTestEngine(t, WithKitchen(kitchen))

	// A bruising session: spent funds, depleted stock, broken station.
	e.Restaurant.Funds = 42
	e.Restaurant.Inventory["ing_tomato"].Quantity = 0
	e.Kitchen.Station("grill_1").Wear(2)

	require.True(t, e.Reset().Success)

	assert.InDelta(t, 500.0, e.Restaurant.Funds, 1e-9)
	assert.Equal(t, 3, e.Restaurant.CustomerCapacity)
	assert.Equal(t, 5, e.Restaurant.Inventory["ing_tomato"].Quantity)

	grill := e.Kitchen.Station("grill_1")
	require.NotNil(t, grill, "reset keeps the injected station roster")
	assert.Equal(t, models.EquipmentIdle, grill.Status)
	assert.InDelta(t, 1.0, grill.Reliability, 1e-9)
}

func TestResetIsRepeatableFromTheSameBaseline(t *testing.T) {
	e, _ := newTestEngine(t)

	require.True(t, e.Reset().Success)
	e.Restaurant.Funds = 7
	e.Restaurant.Inventory["ing_basil"].Quantity = 0

	require.True(t, e.Reset().Success)
	assert.InDelta(t, 500.0, e.Restaurant.Funds, 1e-9)
	assert.Equal(t, 5, e.Restaurant.Inventory["ing_basil"].Quantity)
}

func TestResultNeverPanicsOnUnknownIDs(t *testing.T) {
	e, _ := newTestEngine(t)

	for _, res := range []Result{
		e.SeatCustomer("nope", "t1"),
		e.TakeOrder("nope", "dish_soup"),
		e.StartCooking("nope"),
		e.CompleteCooking("nope"),
		e.StartPlating("nope"),
		e.CompletePlating("nope"),
		e.ServeOrder("nope"),
		e.ProcessPayment("nope"),
		e.ConsumeIngredient("nope", 1),
		e.PurchaseIngredient("nope", 1),
	} {
		require.False(t, res.Success)
		require.NotEmpty(t, res.Message)
	}
}
