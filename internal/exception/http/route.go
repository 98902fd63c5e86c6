package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, instructorMiddleware gin.HandlerFunc) {
	group := g.Group("/schedule-exceptions")
	group.Use(authMiddleware, instructorMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.DELETE("/:id", h.Delete)
	}
}
