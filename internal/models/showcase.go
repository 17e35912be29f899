package models

import "time"

// CarouselImage is a slide in the home page hero carousel.
type CarouselImage struct {
	ID        ID        `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title" binding:"max=200"`
	Subtitle  string    `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL  string    `bson:"imageUrl" json:"imageUrl" binding:"required"`
	Alt       string    `bson:"alt,omitempty" json:"alt,omitempty"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CarouselImagePatch struct {
	Title    *string `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle *string `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL *string `bson:"imageUrl,omitempty" json:"imageUrl,omitempty" binding:"omitempty,min=1"`
	Alt      *string `bson:"alt,omitempty" json:"alt,omitempty"`
	Link     *string `bson:"link,omitempty" json:"link,omitempty"`
	Order    *int    `bson:"order,omitempty" json:"order,omitempty"`
}

// FeatureCard is one of the "why choose us" cards on the home page.
type FeatureCard struct {
	ID          ID        `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title" binding:"required,max=120"`
	Description string    `bson:"description" json:"description" binding:"required,max=1000"`
	Icon        string    `bson:"icon,omitempty" json:"icon,omitempty"`
	Order       int       `bson:"order" json:"order"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

type FeatureCardPatch struct {
	Title       *string `bson:"title,omitempty" json:"title,omitempty" binding:"omitempty,min=1,max=120"`
	Description *string `bson:"description,omitempty" json:"description,omitempty" binding:"omitempty,max=1000"`
	Icon        *string `bson:"icon,omitempty" json:"icon,omitempty"`
	Order       *int    `bson:"order,omitempty" json:"order,omitempty"`
}
