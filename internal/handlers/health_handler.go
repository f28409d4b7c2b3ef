package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubscriberCounter reports how many push subscribers are connected.
type SubscriberCounter interface {
	Count() int
}

// HealthHandler reports liveness.
type HealthHandler struct {
	subscribers SubscriberCounter
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(subscribers SubscriberCounter) *HealthHandler {
	return &HealthHandler{subscribers: subscribers}
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Subscribers int    `json:"subscribers" example:"3"`
}

// Health handles liveness checks.
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Subscribers: h.subscribers.Count()})
}
