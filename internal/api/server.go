// Package api exposes the simulation engine over HTTP for the UI and
// assistant collaborators. Engine failures come back as structured JSON;
// the engine never panics across this boundary.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bistro/internal/assistant"
	"bistro/internal/database"
	"bistro/internal/engine"
	"bistro/internal/monitoring"
)

// Server wires the engine, the archive store and the assistant dispatcher
// into a gin router.
type Server struct {
	Router    *gin.Engine
	engine    *engine.Engine
	store     *database.Store
	assistant *assistant.Assistant
	monitor   *monitoring.Monitor
	hub       *Hub
}

// NewServer creates the API server and its websocket hub. The store and
// assistant may be nil; their routes then report unavailability.
func NewServer(eng *engine.Engine, store *database.Store, asst *assistant.Assistant) *Server {
	s := &Server{
		Router:    gin.Default(),
		engine:    eng,
		store:     store,
		assistant: asst,
		monitor:   monitoring.NewMonitor(),
		hub:       NewHub(eng.Bus()),
	}
	s.monitor.Attach(eng.Bus())
	s.setupRoutes()
	return s
}

// Hub returns the websocket hub so the host can stop it on shutdown.
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "bistro engine is running"})
	})
	s.Router.GET("/ws", s.hub.HandleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Game lifecycle
		v1.POST("/game/start", s.startGame)
		v1.POST("/game/stop", s.stopGame)
		v1.POST("/game/reset", s.resetGame)
		v1.POST("/game/pause", s.pauseGame)
		v1.GET("/game/snapshot", s.getSnapshot)
		v1.GET("/game/events", s.getEvents)
		v1.GET("/game/sessions", s.getSessions)
		v1.GET("/game/stats", s.getStats)

		// Customers
		v1.POST("/customers/seat", s.seatCustomer)

		// Orders
		v1.POST("/orders", s.takeOrder)
		v1.GET("/orders/:id", s.getOrderStatus)
		v1.POST("/orders/:id/rush", s.rushOrder)
		v1.POST("/orders/:id/serve", s.serveOrder)
		v1.POST("/orders/:id/pay", s.payOrder)

		// Kitchen
		v1.POST("/kitchen/prep", s.startPreparation)
		v1.POST("/kitchen/prep/:id/complete", s.completePreparation)
		v1.POST("/kitchen/cook", s.startCooking)
		v1.GET("/kitchen/cook/:id", s.cookingProgress)
		v1.POST("/kitchen/cook/:id/complete", s.completeCooking)
		v1.POST("/kitchen/plate", s.startPlating)
		v1.POST("/kitchen/plate/:id/items", s.addPlatingItem)
		v1.POST("/kitchen/plate/:id/garnish", s.addGarnish)
		v1.GET("/kitchen/plate/:id/check", s.checkPlating)
		v1.POST("/kitchen/plate/:id/complete", s.completePlating)

		// Inventory & finance
		v1.POST("/inventory/purchase", s.purchaseIngredient)
		v1.POST("/inventory/consume", s.consumeIngredient)
		v1.POST("/finance/expenses", s.dailyExpenses)

		// Player actions
		v1.POST("/actions", s.queueAction)

		// Assistant command routing
		v1.POST("/assistant/command", s.assistantCommand)
		v1.GET("/assistant/actions", s.listActions)
	}
}

// respond maps an engine Result to HTTP: expected failures become 400s with
// the result body intact so callers branch on `success` either way.
func respond(c *gin.Context, res engine.Result) {
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, res)
}
