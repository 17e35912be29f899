package models

import "time"

const (
	PostStatusDraft     = "Draft"
	PostStatusPublished = "Published"
)

type BlogPost struct {
	ID          ID         `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title" binding:"required,max=200"`
	Slug        string     `bson:"slug" json:"slug"`
	Excerpt     string     `bson:"excerpt" json:"excerpt" binding:"max=500"`
	Content     string     `bson:"content" json:"content" binding:"required"` // markdown
	ContentHTML string     `bson:"-" json:"contentHtml,omitempty"`
	Author      string     `bson:"author,omitempty" json:"author,omitempty"`
	Category    string     `bson:"category,omitempty" json:"category,omitempty"`
	Tags        []string   `bson:"tags" json:"tags"`
	Image       string     `bson:"image,omitempty" json:"image,omitempty"`
	Status      string     `bson:"status" json:"status" binding:"omitempty,oneof=Draft Published"`
	ViewCount   int        `bson:"viewCount" json:"viewCount"`
	Featured    bool       `bson:"featured" json:"featured"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (p *BlogPost) ApplyDefaults() {
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Status == PostStatusPublished && p.PublishedAt == nil {
		now := time.Now().UTC()
		p.PublishedAt = &now
	}
}

type BlogPostPatch struct {
	Title       *string    `bson:"title,omitempty" json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Slug        *string    `bson:"slug,omitempty" json:"slug,omitempty"`
	Excerpt     *string    `bson:"excerpt,omitempty" json:"excerpt,omitempty" binding:"omitempty,max=500"`
	Content     *string    `bson:"content,omitempty" json:"content,omitempty"`
	Author      *string    `bson:"author,omitempty" json:"author,omitempty"`
	Category    *string    `bson:"category,omitempty" json:"category,omitempty"`
	Tags        *[]string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Image       *string    `bson:"image,omitempty" json:"image,omitempty"`
	Status      *string    `bson:"status,omitempty" json:"status,omitempty" binding:"omitempty,oneof=Draft Published"`
	Featured    *bool      `bson:"featured,omitempty" json:"featured,omitempty"`
	PublishedAt *time.Time `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
}
