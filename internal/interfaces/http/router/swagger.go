package router

import (
	// registers the generated API description with swag
	_ "github.com/Eros-Aphrodite/Inventory-sub000/docs"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterSwagger serves the Swagger UI and doc.json under /swagger on the
// engine, outside the API group's identity middleware. guard decides who may
// read them.
func RegisterSwagger(engine *gin.Engine, guard gin.HandlerFunc) {
	handlers := []gin.HandlerFunc{}
	if guard != nil {
		handlers = append(handlers, guard)
	}
	handlers = append(handlers, ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/swagger/*any", handlers...)
}
