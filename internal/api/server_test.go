package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bistro/internal/engine"
	"bistro/internal/models"
)

func newTestServer(t *testing.T) (*Server, *engine.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	s := NewServer(eng, nil, nil)
	t.Cleanup(s.Hub().Stop)
	return s, eng
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSnapshotEndpoint(t *testing.T) {
	s, eng := newTestServer(t)
	eng.GenerateCustomer()

	w := do(s, http.MethodGet, "/api/v1/game/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snap engine.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.Restaurant.QueueLength)
	assert.Equal(t, 500.0, snap.Restaurant.Funds)
}

func TestSeatCustomerEndpoint(t *testing.T) {
	s, eng := newTestServer(t)
	c := eng.GenerateCustomer()

	w := do(s, http.MethodPost, "/api/v1/customers/seat",
		`{"customerId": "`+c.ID+`", "tableId": "t1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
}

func TestSeatCustomerValidation(t *testing.T) {
	s, _ := newTestServer(t)

	// Missing required field: rejected by binding before the engine runs.
	w := do(s, http.MethodPost, "/api/v1/customers/seat", `{"tableId": "t1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEngineFailureMapsToBadRequest(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/customers/seat",
		`{"customerId": "ghost", "tableId": "t1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The Result envelope survives so callers branch on success either way.
	var res engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "not found")
}

func TestUnknownOrderIsNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/api/v1/orders/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsEndpointFilters(t *testing.T) {
	s, eng := newTestServer(t)
	eng.GenerateCustomer()
	eng.GenerateCustomer()

	w := do(s, http.MethodGet, "/api/v1/game/events?event=customer_arrived&limit=1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 1)
}

func TestStatsEndpointReportsUptime(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/api/v1/game/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "uptime_seconds")
}

func TestSessionsUnavailableWithoutStore(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodGet, "/api/v1/game/sessions", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAssistantUnavailableWithoutModel(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(s, http.MethodPost, "/api/v1/assistant/command", `{"text": "hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFullOrderFlowOverHTTP(t *testing.T) {
	s, eng := newTestServer(t)
	c := eng.GenerateCustomer()

	require.Equal(t, http.StatusOK, do(s, http.MethodPost, "/api/v1/customers/seat",
		`{"customerId": "`+c.ID+`", "tableId": "t1"}`).Code)

	w := do(s, http.MethodPost, "/api/v1/orders",
		`{"customerId": "`+c.ID+`", "dishId": "dish_soup"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	orderID := res.Data["orderId"].(string)

	w = do(s, http.MethodGet, "/api/v1/orders/"+orderID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var view engine.OrderStatusView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, models.OrderReceived, view.Status)
}
