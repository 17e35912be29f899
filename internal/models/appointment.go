package models

import "time"

const (
	AppointmentPending   = "Pending"
	AppointmentConfirmed = "Confirmed"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	ID          ID        `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Email       string    `bson:"email" json:"email"`
	Phone       string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	ServiceID   ID        `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName string    `bson:"-" json:"serviceName,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"` // "HH:MM", local to the business
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (a *Appointment) ApplyDefaults() {
	if a.Status == "" {
		a.Status = AppointmentPending
	}
}

type AppointmentPatch struct {
	Name      *string    `bson:"name,omitempty"`
	Email     *string    `bson:"email,omitempty"`
	Phone     *string    `bson:"phone,omitempty"`
	Address   *string    `bson:"address,omitempty"`
	ServiceID *ID        `bson:"serviceId,omitempty"`
	Date      *time.Time `bson:"date,omitempty"`
	Time      *string    `bson:"time,omitempty"`
	Notes     *string    `bson:"notes,omitempty"`
	Status    *string    `bson:"status,omitempty"`
}
