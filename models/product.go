package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a sellable catalog item. ProductID is caller-assigned and unique;
// the Mongo _id is internal only.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID       string             `bson:"id" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Name            string             `bson:"name,omitempty" json:"-"` // legacy field, pre-dates title
	Description     string             `bson:"description" json:"description"`
	Image           string             `bson:"image" json:"image"`
	OriginalPrice   float64            `bson:"originalPrice" json:"originalPrice"`
	DiscountedPrice float64            `bson:"discountedPrice" json:"discountedPrice"`
	Rating          float64            `bson:"rating" json:"rating"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Normalize backfills Title from the legacy Name field for records written
// before the title rename. Must be applied on every read path.
func (p *Product) Normalize() {
	if p.Title == "" && p.Name != "" {
		p.Title = p.Name
	}
}
