package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/check-in", h.CheckIn)
		group.POST("/:id/check-out", h.CheckOut)
		group.POST("/:id/no-show", h.MarkNoShow)
	}
}
