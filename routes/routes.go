package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Manoj-V07/Gadgetory/events"
	"github.com/Manoj-V07/Gadgetory/store"
)

// Deps carries the injected collaborators the route groups close over.
type Deps struct {
	Products  store.ProductStore
	Carts     store.CartStore
	Orders    store.OrderStore
	Publisher events.Publisher
	JWTSecret string
}

// SetupRoutes is the single entry point that wires up the product, cart and
// order route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupProductRoutes(r, d)
	SetupCartRoutes(r, d)
	SetupOrderRoutes(r, d)
}
