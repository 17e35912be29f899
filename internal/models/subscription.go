package models

import "time"

// Subscription is a recurring maintenance plan offered on the pricing page.
type Subscription struct {
	ID          ID        `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name" binding:"required,max=120"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price" binding:"min=0"`
	Interval    string    `bson:"interval" json:"interval" binding:"omitempty,oneof=weekly fortnightly monthly quarterly yearly"`
	Features    []Feature `bson:"features" json:"features"`
	Popular     bool      `bson:"popular" json:"popular"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Subscription) ApplyDefaults() {
	if s.Interval == "" {
		s.Interval = "monthly"
	}
	if s.Features == nil {
		s.Features = []Feature{}
	}
}

type SubscriptionPatch struct {
	Name        *string    `bson:"name,omitempty" json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Description *string    `bson:"description,omitempty" json:"description,omitempty"`
	Price       *float64   `bson:"price,omitempty" json:"price,omitempty" binding:"omitempty,min=0"`
	Interval    *string    `bson:"interval,omitempty" json:"interval,omitempty" binding:"omitempty,oneof=weekly fortnightly monthly quarterly yearly"`
	Features    *[]Feature `bson:"features,omitempty" json:"features,omitempty"`
	Popular     *bool      `bson:"popular,omitempty" json:"popular,omitempty"`
	Order       *int       `bson:"order,omitempty" json:"order,omitempty"`
}
