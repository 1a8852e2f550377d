package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mirstone/ordermart/internal/adapter/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	orderHandler *OrderHandler,
	metrics *ServerMetrics) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.Middleware())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)

			orders.POST("/:id/items", orderHandler.AddItem)
			orders.PATCH("/:id/items/:productId", orderHandler.UpdateItemQuantity)
			orders.DELETE("/:id/items/:productId", orderHandler.RemoveItem)
			orders.PUT("/:id/shipping-address", orderHandler.SetShippingAddress)
			orders.PUT("/:id/billing-address", orderHandler.SetBillingAddress)

			orders.POST("/:id/place", orderHandler.PlaceOrder)
			orders.POST("/:id/confirm", orderHandler.ConfirmOrder)
			orders.POST("/:id/prepare", orderHandler.PrepareOrder)
			orders.POST("/:id/ship", orderHandler.ShipOrder)
			orders.POST("/:id/deliver", orderHandler.DeliverOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
			orders.POST("/:id/return", orderHandler.ReturnOrder)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
