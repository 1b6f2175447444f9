package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

type CreateProductInput struct {
	ID              string  `json:"id" binding:"required"`
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Image           string  `json:"image"`
	OriginalPrice   float64 `json:"originalPrice" binding:"min=0"`
	DiscountedPrice float64 `json:"discountedPrice" binding:"min=0"`
	Rating          float64 `json:"rating" binding:"min=0,max=5"`
}

// POST /products
func CreateProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := models.Product{
			ProductID:       input.ID,
			Title:           input.Title,
			Description:     input.Description,
			Image:           input.Image,
			OriginalPrice:   input.OriginalPrice,
			DiscountedPrice: input.DiscountedPrice,
			Rating:          input.Rating,
		}

		if err := products.CreateProduct(c.Request.Context(), &product); err != nil {
			if errors.Is(err, store.ErrDuplicateID) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product with this id already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}

// GET /products
func GetProducts(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.ListProducts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		if list == nil {
			list = []models.Product{}
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /products/:id
func GetProductByID(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := products.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /products/:id
func DeleteProduct(products store.ProductStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
