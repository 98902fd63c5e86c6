package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings/:id/events")
	group.Use(authMiddleware, adminMiddleware)
	{
		group.GET("", h.ListByBooking)
	}
}
