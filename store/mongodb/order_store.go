package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

// Checkout inserts the order and empties the user's cart inside one
// transaction, so a crash cannot leave an order without a drained cart or
// vice versa. The drain filters on the cart still holding exactly the
// snapshot the order was priced from; a line added in between aborts the
// transaction with ErrConflict instead of being wiped.
func (s *Store) Checkout(ctx context.Context, order *models.Order, cartSnapshot []models.CartItem) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.orders.InsertOne(sc, order); err != nil {
			return nil, fmt.Errorf("failed to insert order: %w", err)
		}
		result, err := s.carts.UpdateOne(sc,
			bson.M{"user_id": order.UserID, "items": cartSnapshot},
			bson.M{"$set": bson.M{"items": []models.CartItem{}, "updated_at": order.CreatedAt}},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
		if result.MatchedCount == 0 {
			ferr := s.carts.FindOne(sc, bson.M{"user_id": order.UserID}).Err()
			if ferr == nil {
				return nil, store.ErrConflict
			}
			if ferr != mongo.ErrNoDocuments {
				return nil, fmt.Errorf("failed to check cart: %w", ferr)
			}
			// no cart to drain
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Order placed", "order_id", order.OrderID, "user_id", order.UserID, "total", order.TotalPrice)
	return nil
}

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.orders.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (s *Store) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.orders.FindOne(ctx, bson.M{"order_id": orderID, "user_id": userID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}
