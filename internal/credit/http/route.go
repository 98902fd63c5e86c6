package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/credit-packages")
	group.Use(authMiddleware)
	{
		group.GET("", h.ListMine)
		group.GET("/:id", h.Get)
	}

	admin := group.Group("")
	admin.Use(adminMiddleware)
	{
		admin.POST("", h.Grant)
	}
}
