package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger проверяет доступность хранилища
type Pinger func(ctx context.Context) error

// SystemHandler обслуживает служебные маршруты
type SystemHandler struct {
	ping Pinger
}

// NewSystemHandler создает обработчик служебных маршрутов
func NewSystemHandler(ping Pinger) *SystemHandler {
	return &SystemHandler{ping: ping}
}

// Welcome отвечает приветствием на корневой маршрут
// GET /
func (h *SystemHandler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Online Quiz System API"})
}

// Health сообщает, доступна ли база данных
// GET /healthz
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		log.Printf("[SystemHandler] Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
