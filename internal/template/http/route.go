package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, instructorMiddleware gin.HandlerFunc) {
	group := g.Group("/schedule-templates")
	group.Use(authMiddleware, instructorMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/apply", h.Apply)
		group.POST("/:id/copy-day", h.CopyDay)
	}
}
