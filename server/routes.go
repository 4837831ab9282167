package server

import "github.com/gin-gonic/gin"

func registerRoutes(router *gin.Engine, h *Handler) {
	router.GET("/", h.Index)

	api := router.Group("/api", CORS())
	{
		api.OPTIONS("/*path", func(c *gin.Context) {})
		api.POST("/format-text", h.FormatText)
		api.POST("/generate-readme", h.GenerateReadme)
	}
}
