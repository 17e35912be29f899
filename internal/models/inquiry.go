package models

import "time"

const (
	InquiryStatusNew      = "New"
	InquiryStatusRead     = "Read"
	InquiryStatusReplied  = "Replied"
	InquiryStatusArchived = "Archived"
)

// Inquiry is a message sent through the public contact form.
type Inquiry struct {
	ID        ID        `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name" binding:"required,max=120"`
	Email     string    `bson:"email" json:"email" binding:"required,email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty" binding:"max=40"`
	Subject   string    `bson:"subject,omitempty" json:"subject,omitempty" binding:"max=200"`
	Message   string    `bson:"message" json:"message" binding:"required,max=5000"`
	ServiceID ID        `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (i *Inquiry) ApplyDefaults() {
	if i.Status == "" {
		i.Status = InquiryStatusNew
	}
}

type InquiryPatch struct {
	Name      *string `bson:"name,omitempty" json:"name,omitempty"`
	Email     *string `bson:"email,omitempty" json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   *string `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   *string `bson:"message,omitempty" json:"message,omitempty"`
	ServiceID *ID     `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Status    *string `bson:"status,omitempty" json:"status,omitempty" binding:"omitempty,oneof=New Read Replied Archived"`
}
