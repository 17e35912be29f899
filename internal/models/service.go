package models

import "time"

// GeneralServiceName is shown when a reference points to no known service.
const GeneralServiceName = "General Service"

type Service struct {
	ID               ID        `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title" binding:"required,max=200"`
	Slug             string    `bson:"slug" json:"slug"`
	ShortDescription string    `bson:"shortDescription" json:"shortDescription" binding:"max=500"`
	Description      string    `bson:"description" json:"description" binding:"required"`
	Price            string    `bson:"price,omitempty" json:"price,omitempty"`
	Duration         string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Category         string    `bson:"category,omitempty" json:"category,omitempty"`
	Image            string    `bson:"image,omitempty" json:"image,omitempty"`
	Features         []Feature `bson:"features" json:"features"`
	Featured         bool      `bson:"featured" json:"featured"`
	Order            int       `bson:"order" json:"order"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (s *Service) ApplyDefaults() {
	if s.Features == nil {
		s.Features = []Feature{}
	}
}

type ServicePatch struct {
	Title            *string    `bson:"title,omitempty" json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Slug             *string    `bson:"slug,omitempty" json:"slug,omitempty"`
	ShortDescription *string    `bson:"shortDescription,omitempty" json:"shortDescription,omitempty" binding:"omitempty,max=500"`
	Description      *string    `bson:"description,omitempty" json:"description,omitempty"`
	Price            *string    `bson:"price,omitempty" json:"price,omitempty"`
	Duration         *string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Category         *string    `bson:"category,omitempty" json:"category,omitempty"`
	Image            *string    `bson:"image,omitempty" json:"image,omitempty"`
	Features         *[]Feature `bson:"features,omitempty" json:"features,omitempty"`
	Featured         *bool      `bson:"featured,omitempty" json:"featured,omitempty"`
	Order            *int       `bson:"order,omitempty" json:"order,omitempty"`
}
