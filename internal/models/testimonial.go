package models

import "time"

type Testimonial struct {
	ID        ID        `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name" binding:"required,max=120"`
	Location  string    `bson:"location,omitempty" json:"location,omitempty"`
	Content   string    `bson:"content" json:"content" binding:"required,max=2000"`
	Rating    int       `bson:"rating" json:"rating" binding:"omitempty,min=1,max=5"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	Featured  bool      `bson:"featured" json:"featured"`
	Order     int       `bson:"order" json:"order"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (t *Testimonial) ApplyDefaults() {
	if t.Rating == 0 {
		t.Rating = 5
	}
}

type TestimonialPatch struct {
	Name     *string `bson:"name,omitempty" json:"name,omitempty" binding:"omitempty,min=1,max=120"`
	Location *string `bson:"location,omitempty" json:"location,omitempty"`
	Content  *string `bson:"content,omitempty" json:"content,omitempty" binding:"omitempty,max=2000"`
	Rating   *int    `bson:"rating,omitempty" json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Image    *string `bson:"image,omitempty" json:"image,omitempty"`
	Featured *bool   `bson:"featured,omitempty" json:"featured,omitempty"`
	Order    *int    `bson:"order,omitempty" json:"order,omitempty"`
}
