package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-lifecycle-bridge/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/healthz", handler.HealthCheck)

	// every v1 route carries a bearer credential; the lifecycle core verifies it
	v1 := router.Group("/v1", middleware.Bearer())
	{
		v1.POST("/accounts", handler.Onboard)

		v1.POST("/raw-batches", handler.CreateRawBatch)
		v1.POST("/raw-batches/:id/sell", handler.SellRawBatch)
		v1.POST("/product-batches", handler.CreateProductBatch)
		v1.POST("/waste-items", handler.CreateWasteItem)
		v1.POST("/recycled-batches", handler.RecycleWasteItems)

		v1.GET("/owned/:stage", handler.ListOwned)
		v1.GET("/watched", handler.ListWatched)
		v1.DELETE("/watched/:id", handler.Unwatch)

		v1.DELETE("/:stage/:id", handler.Delete)
	}
}
