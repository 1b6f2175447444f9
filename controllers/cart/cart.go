package cartControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manoj-V07/Gadgetory/middleware"
	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

type AddCartItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// resolveCart joins the cart's product references against the catalog so the
// caller never sees raw ids. Dangling references (product deleted after being
// added) are dropped from the view.
func resolveCart(ctx context.Context, products store.ProductStore, cart *models.Cart) (*models.ResolvedCart, error) {
	resolved := &models.ResolvedCart{Products: []models.ResolvedCartItem{}}
	if cart == nil || len(cart.Items) == 0 {
		return resolved, nil
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
	for _, item := range cart.Items {
		if p, ok := byID[item.ProductID]; ok {
			resolved.Products = append(resolved.Products, models.ResolvedCartItem{
				Product:  p,
				Quantity: item.Quantity,
			})
		}
	}
	return resolved, nil
}

func respondWithCart(c *gin.Context, status int, products store.ProductStore, carts store.CartStore, userID, message string) {
	cart, err := carts.GetCart(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	resolved, err := resolveCart(c.Request.Context(), products, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(status, gin.H{"message": message, "cart": resolved})
}

// GET /carts
func GetCart(products store.ProductStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		cart, err := carts.GetCart(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// no cart yet is not an error, just an empty shape
				c.JSON(http.StatusOK, gin.H{"message": "Cart is empty", "cart": models.ResolvedCart{Products: []models.ResolvedCartItem{}}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		resolved, err := resolveCart(c.Request.Context(), products, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": resolved})
	}
}

// POST /carts
func AddCartItem(products store.ProductStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := products.GetProduct(c.Request.Context(), input.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		created, err := carts.AddCartItem(c.Request.Context(), userID, input.ProductID, input.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product to cart"})
			return
		}

		status := http.StatusOK
		message := "Product added to cart"
		if created {
			status = http.StatusCreated
			message = "Cart created"
		}
		respondWithCart(c, status, products, carts, userID, message)
	}
}

// PATCH /carts/:productId
func UpdateCartItem(products store.ProductStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		productID := c.Param("productId")

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}

		if err := carts.UpdateCartItemQuantity(c.Request.Context(), userID, productID, input.Quantity); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		respondWithCart(c, http.StatusOK, products, carts, userID, "Cart item updated")
	}
}

// DELETE /carts/:productId
func RemoveCartItem(products store.ProductStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		productID := c.Param("productId")

		if err := carts.RemoveCartItem(c.Request.Context(), userID, productID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product from cart"})
			return
		}

		respondWithCart(c, http.StatusOK, products, carts, userID, "Product removed from cart")
	}
}
