package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Manoj-V07/Gadgetory/controllers/cart"
	"github.com/Manoj-V07/Gadgetory/middleware"
)

// SetupCartRoutes registers the "/carts" endpoints. All require a valid token.
func SetupCartRoutes(r *gin.Engine, d Deps) {
	carts := r.Group("/carts")
	carts.Use(middleware.ValidateToken(d.JWTSecret))
	{
		carts.GET("", cartControllers.GetCart(d.Products, d.Carts))
		carts.POST("", cartControllers.AddCartItem(d.Products, d.Carts))
		carts.PATCH("/:productId", cartControllers.UpdateCartItem(d.Products, d.Carts))
		carts.DELETE("/:productId", cartControllers.RemoveCartItem(d.Products, d.Carts))
	}
}
