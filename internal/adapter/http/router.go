package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirillPurposeful/order-service-mvp/internal/adapter/http/middleware"
	"github.com/KirillPurposeful/order-service-mvp/internal/logging"
)

func NewRouter(h *OrderHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics(), middleware.Logging(logging.New("http")))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/orders", h.CreateOrder)
		v1.GET("/orders", h.ListOrders)
		v1.GET("/orders/:id", h.GetOrderByID)
		v1.POST("/orders/:id/confirm", h.ConfirmOrder)
		v1.POST("/orders/:id/cancel", h.CancelOrder)
		v1.DELETE("/orders/:id", h.DeleteOrder)
	}

	return r
}
