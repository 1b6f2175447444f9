package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

// Store is an in-memory substitute for the Mongo store, used in tests and as
// a reference implementation of the store semantics. A single mutex stands in
// for per-document atomicity and the checkout transaction.
type Store struct {
	mu           sync.RWMutex
	productsByID map[string]models.Product
	cartsByUser  map[string]models.Cart
	ordersByUser map[string][]models.Order
}

func NewStore() *Store {
	return &Store{
		productsByID: make(map[string]models.Product),
		cartsByUser:  make(map[string]models.Cart),
		ordersByUser: make(map[string][]models.Order),
	}
}

var (
	_ store.ProductStore = (*Store)(nil)
	_ store.CartStore    = (*Store)(nil)
	_ store.OrderStore   = (*Store)(nil)
)

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.productsByID[p.ProductID]; ok {
		return store.ErrDuplicateID
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.productsByID[p.ProductID] = *p
	return nil
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.productsByID[productID]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Normalize()
	return &p, nil
}

func (s *Store) GetProducts(ctx context.Context, productIDs []string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(productIDs))
	for _, id := range productIDs {
		if p, ok := s.productsByID[id]; ok {
			p.Normalize()
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.productsByID))
	for _, p := range s.productsByID {
		p.Normalize()
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (s *Store) DeleteProduct(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.productsByID[productID]; !ok {
		return store.ErrNotFound
	}
	delete(s.productsByID, productID)
	return nil
}

func (s *Store) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.cartsByUser[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (s *Store) AddCartItem(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()

	cart, ok := s.cartsByUser[userID]
	if !ok {
		s.cartsByUser[userID] = models.Cart{
			UserID:    userID,
			Items:     []models.CartItem{{ProductID: productID, Quantity: quantity}},
			CreatedAt: now,
			UpdatedAt: now,
		}
		return true, nil
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}
	cart.UpdatedAt = now
	s.cartsByUser[userID] = cart
	return false, nil
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.cartsByUser[userID]
	if !ok {
		return store.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			s.cartsByUser[userID] = cart
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) RemoveCartItem(ctx context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.cartsByUser[userID]
	if !ok {
		return store.ErrNotFound
	}
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.UpdatedAt = time.Now()
	s.cartsByUser[userID] = cart
	return nil
}

func (s *Store) Checkout(ctx context.Context, order *models.Order, cartSnapshot []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, hasCart := s.cartsByUser[order.UserID]
	if hasCart && !slices.Equal(cart.Items, cartSnapshot) {
		return store.ErrConflict
	}

	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	s.ordersByUser[order.UserID] = append(s.ordersByUser[order.UserID], cp)

	if hasCart {
		cart.Items = []models.CartItem{}
		cart.UpdatedAt = time.Now()
		s.cartsByUser[order.UserID] = cart
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := append([]models.Order(nil), s.ordersByUser[userID]...)
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, order := range s.ordersByUser[userID] {
		if order.OrderID == orderID {
			cp := order
			cp.Items = append([]models.OrderItem(nil), order.Items...)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}
