package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bistro/internal/models"
)

func (s *Server) startGame(c *gin.Context) {
	respond(c, s.engine.Start())
}

func (s *Server) stopGame(c *gin.Context) {
	respond(c, s.engine.Stop())
}

func (s *Server) resetGame(c *gin.Context) {
	respond(c, s.engine.Reset())
}

func (s *Server) pauseGame(c *gin.Context) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.engine.SetPaused(req.Paused)
	c.JSON(http.StatusOK, gin.H{"success": true, "paused": req.Paused})
}

func (s *Server) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Snapshot())
}

func (s *Server) getEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	name := c.Query("event")
	c.JSON(http.StatusOK, s.engine.Bus().History(limit, name))
}

func (s *Server) getSessions(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "archive store not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	sessions, err := s.store.RecentSessions(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (s *Server) getStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

func (s *Server) seatCustomer(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customerId" binding:"required"`
		TableID    string `json:"tableId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.SeatCustomer(req.CustomerID, req.TableID))
}

func (s *Server) takeOrder(c *gin.Context) {
	var req struct {
		CustomerID string `json:"customerId" binding:"required"`
		DishID     string `json:"dishId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.TakeOrder(req.CustomerID, req.DishID))
}

func (s *Server) getOrderStatus(c *gin.Context) {
	view := s.engine.CheckOrderStatus(c.Param("id"))
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) rushOrder(c *gin.Context) {
	respond(c, s.engine.RushOrder(c.Param("id")))
}

func (s *Server) serveOrder(c *gin.Context) {
	respond(c, s.engine.ServeOrder(c.Param("id")))
}

func (s *Server) payOrder(c *gin.Context) {
	respond(c, s.engine.ProcessPayment(c.Param("id")))
}

func (s *Server) startPreparation(c *gin.Context) {
	var req struct {
		IngredientID string  `json:"ingredientId" binding:"required"`
		Action       string  `json:"action"`
		Duration     float64 `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Action == "" {
		req.Action = string(models.ActionChop)
	}
	if req.Duration <= 0 {
		req.Duration = 10
	}
	respond(c, s.engine.StartPreparation(req.IngredientID, models.StepAction(req.Action), req.Duration))
}

func (s *Server) completePreparation(c *gin.Context) {
	respond(c, s.engine.CompletePreparation(c.Param("id")))
}

func (s *Server) startCooking(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.StartCooking(req.OrderID))
}

func (s *Server) cookingProgress(c *gin.Context) {
	respond(c, s.engine.CookingProgress(c.Param("id")))
}

func (s *Server) completeCooking(c *gin.Context) {
	respond(c, s.engine.CompleteCooking(c.Param("id")))
}

func (s *Server) startPlating(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.StartPlating(req.OrderID))
}

func (s *Server) addPlatingItem(c *gin.Context) {
	var req struct {
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.AddPlatingItem(c.Param("id"), req.ItemID))
}

func (s *Server) addGarnish(c *gin.Context) {
	var req struct {
		GarnishID string `json:"garnishId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.AddGarnish(c.Param("id"), req.GarnishID))
}

func (s *Server) checkPlating(c *gin.Context) {
	check, res := s.engine.CheckPlating(c.Param("id"))
	if !res.Success {
		respond(c, res)
		return
	}
	c.JSON(http.StatusOK, check)
}

func (s *Server) completePlating(c *gin.Context) {
	respond(c, s.engine.CompletePlating(c.Param("id")))
}

func (s *Server) purchaseIngredient(c *gin.Context) {
	var req struct {
		IngredientID string `json:"ingredientId" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.PurchaseIngredient(req.IngredientID, req.Quantity))
}

func (s *Server) consumeIngredient(c *gin.Context) {
	var req struct {
		IngredientID string `json:"ingredientId" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.ConsumeIngredient(req.IngredientID, req.Quantity))
}

func (s *Server) dailyExpenses(c *gin.Context) {
	amount := s.engine.CalculateDailyExpenses()
	c.JSON(http.StatusOK, gin.H{"success": true, "deducted": amount})
}

func (s *Server) queueAction(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Duration float64 `json:"duration"`
		TargetID string  `json:"targetId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	respond(c, s.engine.QueueAction(req.Name, req.Duration, req.TargetID))
}

func (s *Server) assistantCommand(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not configured"})
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := s.assistant.Handle(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (s *Server) listActions(c *gin.Context) {
	if s.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant not configured"})
		return
	}
	c.JSON(http.StatusOK, s.assistant.Catalog())
}
