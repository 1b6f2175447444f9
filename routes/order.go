package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Manoj-V07/Gadgetory/controllers/order"
	"github.com/Manoj-V07/Gadgetory/middleware"
)

// SetupOrderRoutes registers the "/orders" endpoints plus the websocket feed
// for real-time order updates.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(d.JWTSecret))
	{
		orders.POST("", orderControllers.PlaceOrderHandler(d.Products, d.Carts, d.Orders, d.Publisher))
		orders.GET("", orderControllers.GetOrdersHandler(d.Products, d.Orders))
		orders.GET("/:orderId", orderControllers.GetOrderByIDHandler(d.Products, d.Orders))
	}

	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}
