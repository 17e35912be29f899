package models

import "time"

type PortfolioItem struct {
	ID          ID         `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title" binding:"required,max=200"`
	Description string     `bson:"description" json:"description"`
	ServiceID   ID         `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName string     `bson:"-" json:"serviceName,omitempty"`
	Location    string     `bson:"location,omitempty" json:"location,omitempty"`
	Images      []string   `bson:"images" json:"images"`
	BeforeImage string     `bson:"beforeImage,omitempty" json:"beforeImage,omitempty"`
	AfterImage  string     `bson:"afterImage,omitempty" json:"afterImage,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Featured    bool       `bson:"featured" json:"featured"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (p *PortfolioItem) ApplyDefaults() {
	if p.Images == nil {
		p.Images = []string{}
	}
}

type PortfolioItemPatch struct {
	Title       *string    `bson:"title,omitempty" json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description *string    `bson:"description,omitempty" json:"description,omitempty"`
	ServiceID   *ID        `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Location    *string    `bson:"location,omitempty" json:"location,omitempty"`
	Images      *[]string  `bson:"images,omitempty" json:"images,omitempty"`
	BeforeImage *string    `bson:"beforeImage,omitempty" json:"beforeImage,omitempty"`
	AfterImage  *string    `bson:"afterImage,omitempty" json:"afterImage,omitempty"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Featured    *bool      `bson:"featured,omitempty" json:"featured,omitempty"`
}
