package orderControllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Manoj-V07/Gadgetory/events"
	"github.com/Manoj-V07/Gadgetory/middleware"
	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

type PlaceOrderInput struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod"`
}

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product no longer available")
)

const checkoutRetries = 3

// PlaceOrder drains the user's cart into a new pending order. Prices are read
// from the catalog at this moment and frozen into the order; the cart is
// emptied in the same store transaction as the order insert. Checkout rejects
// a stale cart snapshot, so a line added mid-flight is never discarded; the
// read-price-checkout cycle simply runs again and picks it up.
func PlaceOrder(ctx context.Context, products store.ProductStore, carts store.CartStore, orders store.OrderStore, userID, shippingAddress, paymentMethod string) (*models.Order, error) {
	var err error
	for attempt := 0; attempt < checkoutRetries; attempt++ {
		var order *models.Order
		order, err = placeOrderOnce(ctx, products, carts, orders, userID, shippingAddress, paymentMethod)
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		return order, err
	}
	return nil, err
}

func placeOrderOnce(ctx context.Context, products store.ProductStore, carts store.CartStore, orders store.OrderStore, userID, shippingAddress, paymentMethod string) (*models.Order, error) {
	cart, err := carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	list, err := products.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(list))
	for _, p := range list {
		byID[p.ProductID] = p
	}

	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCOD
	}

	order := &models.Order{
		OrderID:         uuid.NewString(),
		UserID:          userID,
		Items:           make([]models.OrderItem, 0, len(cart.Items)),
		Status:          models.OrderStatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		CreatedAt:       time.Now(),
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, ErrProductUnavailable
		}
		lineTotal := product.DiscountedPrice * float64(item.Quantity)
		order.TotalPrice += lineTotal
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.DiscountedPrice,
		})
	}

	if err := orders.Checkout(ctx, order, cart.Items); err != nil {
		return nil, err
	}
	return order, nil
}

// POST /orders
func PlaceOrderHandler(products store.ProductStore, carts store.CartStore, orders store.OrderStore, publisher events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
			return
		}

		order, err := PlaceOrder(c.Request.Context(), products, carts, orders, userID, input.ShippingAddress, input.PaymentMethod)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty. Add items before placing order."})
			case errors.Is(err, ErrProductUnavailable):
				c.JSON(http.StatusBadRequest, gin.H{"error": "A product in your cart is no longer available"})
			case errors.Is(err, store.ErrConflict):
				c.JSON(http.StatusConflict, gin.H{"error": "Cart changed while placing the order. Please try again."})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		if publisher != nil {
			go func(o models.Order) {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				_ = publisher.PublishOrderCreated(ctx, &o)
			}(*order)
		}
		broadcastNewOrder(*order)

		resolved, err := resolveOrder(c.Request.Context(), products, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": resolved})
	}
}

// GET /orders
func GetOrdersHandler(products store.ProductStore, orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		list, err := orders.ListOrders(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		resolved := make([]models.ResolvedOrder, 0, len(list))
		for i := range list {
			r, err := resolveOrder(c.Request.Context(), products, &list[i])
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
				return
			}
			resolved = append(resolved, *r)
		}
		c.JSON(http.StatusOK, gin.H{"orders": resolved})
	}
}

// GET /orders/:orderId
func GetOrderByIDHandler(products store.ProductStore, orders store.OrderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		order, err := orders.GetOrder(c.Request.Context(), userID, c.Param("orderId"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		resolved, err := resolveOrder(c.Request.Context(), products, order)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": resolved})
	}
}

// resolveOrder joins frozen line items against the catalog for display. The
// frozen price always wins over the product's current price; a product
// deleted since checkout falls back to a stub carrying just its id.
func resolveOrder(ctx context.Context, products store.ProductStore, order *models.Order) (*models.ResolvedOrder, error) {
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}
	list, err := products.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(list))
	for _, p := range list {
		byID[p.ProductID] = p
	}

	resolved := &models.ResolvedOrder{
		OrderID:         order.OrderID,
		Items:           make([]models.ResolvedOrderItem, 0, len(order.Items)),
		TotalPrice:      order.TotalPrice,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			product = models.Product{ProductID: item.ProductID}
		}
		resolved.Items = append(resolved.Items, models.ResolvedOrderItem{
			Product:  product,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return resolved, nil
}
