package router

import (
	"PriVault/internal/handler"
	"PriVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.GET("/activate", handler.Activate)
		api.POST("/login", handler.Login)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		vault := auth.Group("/vault")
		{
			vault.POST("/bootstrap", handler.Bootstrap)
			vault.GET("/files", handler.ListFiles)
			vault.POST("/upload", handler.UploadFile)
			vault.GET("/preview", handler.PreviewFile)
			vault.POST("/phone", handler.SavePhone)
		}
	}
	return r
}
