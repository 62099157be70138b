package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Motalib01/Ihjizely-sub000/internal/domain"
	"github.com/Motalib01/Ihjizely-sub000/internal/service"
)

// NewRouter wires the thin HTTP surface. No business logic lives here.
func NewRouter(bookings *service.BookingSvc, properties *service.PropertySvc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	bh := NewBookingHandler(bookings)
	ph := NewPropertyHandler(properties)

	v1 := r.Group("/v1")
	v1.POST("/bookings", bh.Create)
	v1.GET("/bookings/:id", bh.Get)
	v1.POST("/bookings/:id/confirm", bh.transitionTo(domain.StatusConfirmed))
	v1.POST("/bookings/:id/reject", bh.transitionTo(domain.StatusRejected))
	v1.POST("/bookings/:id/cancel", bh.transitionTo(domain.StatusRejected))
	v1.POST("/properties", ph.Create)
	v1.GET("/properties/:id", ph.Get)

	return r
}
