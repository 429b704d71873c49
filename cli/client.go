package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// ApiClient talks to a running bistro engine over its REST API.
type ApiClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewApiClient creates a client for the engine API. The server address
// comes from BISTRO_API_URL, defaulting to localhost.
func NewApiClient() *ApiClient {
	baseURL := os.Getenv("BISTRO_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &ApiClient{
		httpClient: &http.Client{
			Timeout: time.Second * 10,
		},
		BaseURL: baseURL,
	}
}

// CheckHealth checks if the API is up and running.
func (c *ApiClient) CheckHealth() (bool, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/health")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("API health check failed with status code: %d", resp.StatusCode)
	}

	return true, nil
}

// Result mirrors the engine's operation result envelope.
type Result struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Customer is one guest, waiting or seated.
type Customer struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Patience     float64 `json:"patience"`
	Status       string  `json:"status"`
	Satisfaction float64 `json:"satisfaction"`
	TableID      string  `json:"tableId,omitempty"`
	OrderID      string  `json:"orderId,omitempty"`
}

// Order is one dish order in flight.
type Order struct {
	ID             string  `json:"id"`
	CustomerID     string  `json:"customerId"`
	DishID         string  `json:"dishId"`
	Status         string  `json:"status"`
	QualityScore   float64 `json:"qualityScore"`
	IsPriority     bool    `json:"isPriority"`
	StepsCompleted int     `json:"stepsCompleted"`
}

// Station is one piece of kitchen equipment.
type Station struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Capacity    int     `json:"capacity"`
	Reliability float64 `json:"reliability"`
	InUse       int     `json:"inUse"`
}

// InventoryItem is one pantry line.
type InventoryItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// Snapshot is the engine's full serialized state.
type Snapshot struct {
	Game struct {
		Mode        string  `json:"mode"`
		Phase       string  `json:"phase"`
		Difficulty  float64 `json:"difficulty"`
		TimeElapsed float64 `json:"timeElapsed"`
		IsPaused    bool    `json:"isPaused"`
		Metrics     struct {
			OrdersCompleted float64 `json:"ordersCompleted"`
			AverageQuality  float64 `json:"averageQuality"`
			CustomersServed float64 `json:"customersServed"`
			CustomersLost   float64 `json:"customersLost"`
		} `json:"performanceMetrics"`
	} `json:"game"`
	Restaurant struct {
		Funds            float64         `json:"funds"`
		Reputation       float64         `json:"reputation"`
		CustomerCapacity int             `json:"customerCapacity"`
		QueueLength      int             `json:"queueLength"`
		Queue            []Customer      `json:"queue"`
		ActiveCustomers  []Customer      `json:"activeCustomers"`
		ActiveOrders     []Order         `json:"activeOrders"`
		Inventory        []InventoryItem `json:"inventory"`
	} `json:"restaurant"`
	Kitchen struct {
		Stations      []Station `json:"stations"`
		PrepTasks     int       `json:"prepTasks"`
		CookProcesses int       `json:"cookProcesses"`
		PlatingTasks  int       `json:"platingTasks"`
	} `json:"kitchen"`
}

// GetSnapshot retrieves the full engine state.
func (c *ApiClient) GetSnapshot() (*Snapshot, error) {
	resp, err := c.httpClient.Get(c.BaseURL + "/api/v1/game/snapshot")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get snapshot with status code: %d", resp.StatusCode)
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// StartGame starts the simulation loop.
func (c *ApiClient) StartGame() (*Result, error) {
	return c.post("/api/v1/game/start", nil)
}

// StopGame stops the simulation loop.
func (c *ApiClient) StopGame() (*Result, error) {
	return c.post("/api/v1/game/stop", nil)
}

// SeatCustomer seats a waiting customer.
func (c *ApiClient) SeatCustomer(customerID, tableID string) (*Result, error) {
	return c.post("/api/v1/customers/seat", map[string]interface{}{
		"customerId": customerID,
		"tableId":    tableID,
	})
}

// SendCommand routes a free-text command through the assistant.
func (c *ApiClient) SendCommand(text string) (*Result, error) {
	return c.post("/api/v1/assistant/command", map[string]interface{}{
		"text": text,
	})
}

func (c *ApiClient) post(path string, body map[string]interface{}) (*Result, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequest("POST", c.BaseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unexpected response: %s", string(data))
	}
	return &result, nil
}
