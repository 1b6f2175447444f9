package orderControllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartControllers "github.com/Manoj-V07/Gadgetory/controllers/cart"
	"github.com/Manoj-V07/Gadgetory/middleware"
	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store/memory"
)

const testSecret = "test-secret"

func testToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    userID,
		"email": userID + "@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func setup(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := memory.NewStore()

	r := gin.New()
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken(testSecret))
	{
		orders.POST("", PlaceOrderHandler(s, s, s, nil))
		orders.GET("", GetOrdersHandler(s, s))
		orders.GET("/:orderId", GetOrderByIDHandler(s, s))
	}
	carts := r.Group("/carts")
	carts.Use(middleware.ValidateToken(testSecret))
	{
		carts.POST("", cartControllers.AddCartItem(s, s))
	}
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken(t, userID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedProduct(t *testing.T, s *memory.Store, id string, price float64) {
	t.Helper()
	require.NoError(t, s.CreateProduct(context.Background(), &models.Product{
		ProductID:       id,
		Title:           "Product " + id,
		DiscountedPrice: price,
		OriginalPrice:   price * 1.5,
	}))
}

type orderResponse struct {
	Order models.ResolvedOrder `json:"order"`
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) models.ResolvedOrder {
	t.Helper()
	var resp orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Order
}

func TestPlaceOrder_FreezesPricesAndEmptiesCart(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 100)
	seedProduct(t, s, "p2", 50)

	_, err := s.AddCartItem(ctx, "user1", "p1", 2)
	require.NoError(t, err)
	_, err = s.AddCartItem(ctx, "user1", "p2", 1)
	require.NoError(t, err)

	order, err := PlaceOrder(ctx, s, s, s, "user1", "221B Baker St", "")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, 250.0, order.TotalPrice)
	require.Len(t, order.Items, 2)

	cart, err := s.GetCart(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestPlaceOrder_PriceChangeDoesNotAffectPastOrders(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedProduct(t, s, "p1", 100)

	_, err := s.AddCartItem(ctx, "user1", "p1", 1)
	require.NoError(t, err)

	order, err := PlaceOrder(ctx, s, s, s, "user1", "221B Baker St", "card")
	require.NoError(t, err)

	// reprice the product after checkout
	require.NoError(t, s.DeleteProduct(ctx, "p1"))
	seedProduct(t, s, "p1", 10)

	got, err := s.GetOrder(ctx, "user1", order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Items[0].Price)
	assert.Equal(t, 100.0, got.TotalPrice)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	_, err := PlaceOrder(ctx, s, s, s, "user1", "221B Baker St", "")
	assert.ErrorIs(t, err, ErrEmptyCart)

	// a cart that was drained by a previous checkout counts as empty too
	seedProduct(t, s, "p1", 100)
	_, err = s.AddCartItem(ctx, "user1", "p1", 1)
	require.NoError(t, err)
	_, err = PlaceOrder(ctx, s, s, s, "user1", "221B Baker St", "")
	require.NoError(t, err)

	_, err = PlaceOrder(ctx, s, s, s, "user1", "221B Baker St", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrderHandler_Validation(t *testing.T) {
	r, s := setup(t)
	seedProduct(t, s, "p1", 100)

	// missing address
	w := doJSON(t, r, http.MethodPost, "/orders", "user1", gin.H{"paymentMethod": "card"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// empty cart
	w = doJSON(t, r, http.MethodPost, "/orders", "user1", gin.H{"shippingAddress": "221B Baker St"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandler_Scenario(t *testing.T) {
	r, s := setup(t)
	seedProduct(t, s, "p1", 100)
	seedProduct(t, s, "p2", 50)

	doJSON(t, r, http.MethodPost, "/carts", "user1", gin.H{"productId": "p1", "quantity": 2})
	doJSON(t, r, http.MethodPost, "/carts", "user1", gin.H{"productId": "p2", "quantity": 1})

	w := doJSON(t, r, http.MethodPost, "/orders", "user1", gin.H{"shippingAddress": "221B Baker St"})
	require.Equal(t, http.StatusCreated, w.Code)

	order := decodeOrder(t, w)
	assert.Equal(t, 250.0, order.TotalPrice)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "221B Baker St", order.ShippingAddress)
}

func TestGetOrders_NewestFirst(t *testing.T) {
	r, s := setup(t)
	seedProduct(t, s, "p1", 100)

	for i := 0; i < 2; i++ {
		doJSON(t, r, http.MethodPost, "/carts", "user1", gin.H{"productId": "p1", "quantity": 1})
		w := doJSON(t, r, http.MethodPost, "/orders", "user1", gin.H{"shippingAddress": "221B Baker St"})
		require.Equal(t, http.StatusCreated, w.Code)
		time.Sleep(5 * time.Millisecond)
	}

	w := doJSON(t, r, http.MethodGet, "/orders", "user1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders []models.ResolvedOrder `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	assert.True(t, resp.Orders[0].CreatedAt.After(resp.Orders[1].CreatedAt))
}

func TestGetOrder_OtherUsersOrderIsNotFound(t *testing.T) {
	r, s := setup(t)
	seedProduct(t, s, "p1", 100)

	doJSON(t, r, http.MethodPost, "/carts", "userA", gin.H{"productId": "p1", "quantity": 1})
	w := doJSON(t, r, http.MethodPost, "/orders", "userA", gin.H{"shippingAddress": "221B Baker St"})
	require.Equal(t, http.StatusCreated, w.Code)
	order := decodeOrder(t, w)

	w = doJSON(t, r, http.MethodGet, "/orders/"+order.OrderID, "userB", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/orders/"+order.OrderID, "userA", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

// racingCartStore slips an extra line into the cart right after the first
// read, simulating an add landing between pricing and checkout.
type racingCartStore struct {
	*memory.Store
	raced bool
}

func (r *racingCartStore) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := r.Store.GetCart(ctx, userID)
	if err == nil && !r.raced {
		r.raced = true
		if _, aerr := r.Store.AddCartItem(ctx, userID, "p-late", 1); aerr != nil {
			return nil, aerr
		}
	}
	return cart, err
}

func TestPlaceOrder_RetriesWhenCartChangesMidCheckout(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedProduct(t, s, "p1", 100)
	seedProduct(t, s, "p-late", 50)

	_, err := s.AddCartItem(ctx, "user1", "p1", 2)
	require.NoError(t, err)

	carts := &racingCartStore{Store: s}
	order, err := PlaceOrder(ctx, s, carts, s, "user1", "221B Baker St", "")
	require.NoError(t, err)
	assert.True(t, carts.raced)

	// the late line is ordered, not discarded
	require.Len(t, order.Items, 2)
	assert.Equal(t, 250.0, order.TotalPrice)

	cart, err := s.GetCart(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}
