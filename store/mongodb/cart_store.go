package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Manoj-V07/Gadgetory/models"
	"github.com/Manoj-V07/Gadgetory/store"
)

func (s *Store) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

const addItemRetries = 3

// AddCartItem merges the quantity into an existing line item with a positional
// $inc, falling back to an upserted $push for a new line. Each step is a
// single atomic document update, so concurrent adds cannot lose increments.
// The push filters on the line being absent; when two first adds of the same
// product race, the loser's upsert collides with the unique user_id index and
// the loop retries the merge, which now matches.
func (s *Store) AddCartItem(ctx context.Context, userID, productID string, quantity int) (bool, error) {
	now := time.Now()
	item := models.CartItem{ProductID: productID, Quantity: quantity}

	for attempt := 0; attempt < addItemRetries; attempt++ {
		result, err := s.carts.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": productID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": quantity},
				"$set": bson.M{"updated_at": now},
			},
		)
		if err != nil {
			return false, fmt.Errorf("failed to merge cart item: %w", err)
		}
		if result.MatchedCount > 0 {
			return false, nil
		}

		result, err = s.carts.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": productID}},
			bson.M{
				"$push":        bson.M{"items": item},
				"$set":         bson.M{"updated_at": now},
				"$setOnInsert": bson.M{"created_at": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return false, fmt.Errorf("failed to add cart item: %w", err)
		}
		return result.UpsertedCount > 0, nil
	}

	return false, fmt.Errorf("failed to add cart item: too much contention on cart for user %s", userID)
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, userID, productID string, quantity int) error {
	result, err := s.carts.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$set": bson.M{
				"items.$.quantity": quantity,
				"updated_at":       time.Now(),
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) RemoveCartItem(ctx context.Context, userID, productID string) error {
	result, err := s.carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	// no cart at all; pulling an absent line from an existing cart is a no-op
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
