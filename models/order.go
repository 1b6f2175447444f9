package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed by seller
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // customer received the item
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping
)

// PaymentMethodCOD is the default payment tag when none is supplied.
const PaymentMethodCOD = "cod"

// Order is an immutable record of a completed checkout. Item prices are
// frozen at order time and never recomputed.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID         string             `bson:"order_id" json:"orderId"`
	UserID          string             `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalPrice      float64            `bson:"total_price" json:"totalPrice"`
	Status          OrderStatus        `bson:"status" json:"status"`
	ShippingAddress string             `bson:"shipping_address" json:"shippingAddress"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// ResolvedOrder is the API view of an order with product references joined
// against the catalog.
type ResolvedOrder struct {
	OrderID         string              `json:"orderId"`
	Items           []ResolvedOrderItem `json:"items"`
	TotalPrice      float64             `json:"totalPrice"`
	Status          OrderStatus         `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type ResolvedOrderItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}
