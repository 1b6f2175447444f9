package routes

import (
	"github.com/gin-gonic/gin"

	productcontroller "github.com/Manoj-V07/Gadgetory/controllers/product"
	"github.com/Manoj-V07/Gadgetory/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Reads are public;
// catalog mutation requires an admin token.
func SetupProductRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.Products))
		products.GET("/:id", productcontroller.GetProductByID(d.Products))

		admin := products.Group("")
		admin.Use(middleware.ValidateToken(d.JWTSecret), middleware.RequireRole("admin"))
		{
			admin.POST("", productcontroller.CreateProduct(d.Products))
			admin.DELETE("/:id", productcontroller.DeleteProduct(d.Products))
		}
	}
}
