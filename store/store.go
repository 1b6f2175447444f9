package store

import (
	"context"
	"errors"

	"github.com/Manoj-V07/Gadgetory/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateID is returned when a product with the same caller-assigned id
// already exists.
var ErrDuplicateID = errors.New("duplicate product id")

// ErrConflict is returned when a guarded write loses to a concurrent
// modification and should be retried from a fresh read.
var ErrConflict = errors.New("concurrent modification")

// ProductStore is the catalog of sellable products.
type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	GetProducts(ctx context.Context, productIDs []string) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

// CartStore holds one cart per user. Mutations are atomic per document so
// concurrent requests against the same cart cannot interleave a
// read-modify-write.
type CartStore interface {
	// GetCart returns ErrNotFound when the user has no cart yet.
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	// AddCartItem merges quantity into an existing line item or appends a new
	// one, creating the cart on first add. Reports whether the cart was created.
	AddCartItem(ctx context.Context, userID, productID string, quantity int) (created bool, err error)
	// UpdateCartItemQuantity overwrites a line item's quantity. ErrNotFound
	// when the cart or the line item does not exist.
	UpdateCartItemQuantity(ctx context.Context, userID, productID string, quantity int) error
	// RemoveCartItem drops a line item. ErrNotFound when the user has no cart;
	// removing an absent line item is a no-op.
	RemoveCartItem(ctx context.Context, userID, productID string) error
}

// OrderStore is the append-only ledger of finalized orders.
type OrderStore interface {
	// Checkout inserts the order and empties (not deletes) the user's cart as
	// a single atomic unit. The drain is guarded by the cart snapshot the
	// order was priced from: ErrConflict when the cart changed since that
	// read, so no concurrently added line is silently discarded.
	Checkout(ctx context.Context, order *models.Order, cartSnapshot []models.CartItem) error
	// ListOrders returns the user's orders, newest first.
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	// GetOrder is scoped to the owning user: another user's order resolves as
	// ErrNotFound, never as a permission error.
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
}
