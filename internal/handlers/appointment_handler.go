package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/greenleaf/garden-api/internal/models"
	"github.com/greenleaf/garden-api/internal/storage"
)

const dateLayout = "2006-01-02"

type appointmentRequest struct {
	Name      string    `json:"name" binding:"required,max=120"`
	Email     string    `json:"email" binding:"required,email"`
	Phone     string    `json:"phone" binding:"max=40"`
	Address   string    `json:"address" binding:"max=300"`
	ServiceID models.ID `json:"serviceId"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required,datetime=15:04"`
	Notes     string    `json:"notes" binding:"max=2000"`
	Status    string    `json:"status" binding:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
}

type appointmentPatchRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=120"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Phone     *string    `json:"phone" binding:"omitempty,max=40"`
	Address   *string    `json:"address" binding:"omitempty,max=300"`
	ServiceID *models.ID `json:"serviceId"`
	Date      *string    `json:"date"`
	Time      *string    `json:"time" binding:"omitempty,datetime=15:04"`
	Notes     *string    `json:"notes" binding:"omitempty,max=2000"`
	Status    *string    `json:"status" binding:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp. Dates are
// stored at midnight UTC.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (h *Handler) appointments() *resource[models.Appointment, models.AppointmentPatch] {
	return &resource[models.Appointment, models.AppointmentPatch]{
		h:        h,
		repo:     h.Store.Appointments,
		label:    "Appointment",
		filter:   appointmentFilter,
		decorate: h.withAppointmentServiceNames,
	}
}

// appointmentFilter reads ?status=&startDate=&endDate= (both dates inclusive).
func appointmentFilter(c *gin.Context) (bson.M, bool) {
	filter := bson.M{}

	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	dateRange := bson.M{}
	if s := c.Query("startDate"); s != "" {
		start, err := time.Parse(dateLayout, s)
		if err != nil {
			fieldError(c, "startDate", "must be a date in YYYY-MM-DD format")
			return nil, false
		}
		dateRange["$gte"] = start
	}
	if s := c.Query("endDate"); s != "" {
		end, err := time.Parse(dateLayout, s)
		if err != nil {
			fieldError(c, "endDate", "must be a date in YYYY-MM-DD format")
			return nil, false
		}
		dateRange["$lt"] = end.AddDate(0, 0, 1)
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter, true
}

func (h *Handler) withAppointmentServiceNames(ctx context.Context, apts []models.Appointment) {
	name := h.serviceNames(ctx)
	for i := range apts {
		apts[i].ServiceName = name(apts[i].ServiceID)
	}
}

// checkService verifies that a booking's service reference names a real
// service. It writes the 400 itself.
func (h *Handler) checkService(c *gin.Context, id models.ID) bool {
	if id == "" {
		return true
	}
	if !id.Valid() {
		fieldError(c, "serviceId", "is not a valid id")
		return false
	}
	if _, err := h.Store.Services.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fieldError(c, "serviceId", "does not match any service")
		} else {
			h.respondError(c, "Service", err)
		}
		return false
	}
	return true
}

func (h *Handler) newAppointment(c *gin.Context) (*models.Appointment, bool) {
	var req appointmentRequest
	if !bindJSON(c, &req) {
		return nil, false
	}
	date, err := parseDate(req.Date)
	if err != nil {
		fieldError(c, "date", "must be a date in YYYY-MM-DD format")
		return nil, false
	}
	if !h.checkService(c, req.ServiceID) {
		return nil, false
	}
	return &models.Appointment{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		ServiceID: req.ServiceID,
		Date:      date,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    req.Status,
	}, true
}

// BookAppointment handles the public booking form. New bookings always start
// as Pending.
func (h *Handler) BookAppointment(c *gin.Context) {
	apt, ok := h.newAppointment(c)
	if !ok {
		return
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if apt.Date.Before(today) {
		fieldError(c, "date", "cannot be in the past")
		return
	}
	apt.Status = models.AppointmentPending

	ctx := c.Request.Context()
	created, err := h.Store.Appointments.Create(ctx, apt)
	if err != nil {
		h.respondError(c, "Appointment", err)
		return
	}
	created.ServiceName = h.Store.ServiceName(ctx, created.ServiceID)

	h.Notifications.NotifyAppointment(created, created.ServiceName)

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Appointment request received. We will confirm shortly.",
		"appointment": created,
	})
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	apt, ok := h.newAppointment(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	created, err := h.Store.Appointments.Create(ctx, apt)
	if err != nil {
		h.respondError(c, "Appointment", err)
		return
	}
	created.ServiceName = h.Store.ServiceName(ctx, created.ServiceID)
	c.JSON(http.StatusCreated, created)
}

// UpdateAppointment merges the supplied fields. Customers are texted when the
// status moves to Confirmed or Cancelled.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	ctx := c.Request.Context()
	id := models.ID(c.Param("id"))

	var req appointmentPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := models.AppointmentPatch{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		ServiceID: req.ServiceID,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    req.Status,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			fieldError(c, "date", "must be a date in YYYY-MM-DD format")
			return
		}
		patch.Date = &date
	}
	if req.ServiceID != nil && !h.checkService(c, *req.ServiceID) {
		return
	}

	current, err := h.Store.Appointments.Get(ctx, id)
	if err != nil {
		h.respondError(c, "Appointment", err)
		return
	}

	updated, err := h.Store.Appointments.Update(ctx, id, &patch)
	if err != nil {
		h.respondError(c, "Appointment", err)
		return
	}
	updated.ServiceName = h.Store.ServiceName(ctx, updated.ServiceID)

	if updated.Status != current.Status &&
		(updated.Status == models.AppointmentConfirmed || updated.Status == models.AppointmentCancelled) {
		h.Notifications.NotifyAppointment(updated, updated.ServiceName)
	}

	c.JSON(http.StatusOK, updated)
}

// CancelAppointment marks an appointment Cancelled and texts the customer.
func (h *Handler) CancelAppointment(c *gin.Context) {
	ctx := c.Request.Context()
	id := models.ID(c.Param("id"))

	apt, err := h.Store.Appointments.Get(ctx, id)
	if err != nil {
		h.respondError(c, "Appointment", err)
		return
	}

	if apt.Status != models.AppointmentCancelled {
		status := models.AppointmentCancelled
		apt, err = h.Store.Appointments.Update(ctx, id, &models.AppointmentPatch{Status: &status})
		if err != nil {
			h.respondError(c, "Appointment", err)
			return
		}
		apt.ServiceName = h.Store.ServiceName(ctx, apt.ServiceID)
		h.Notifications.NotifyAppointment(apt, apt.ServiceName)
	} else {
		apt.ServiceName = h.Store.ServiceName(ctx, apt.ServiceID)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment cancelled", "appointment": apt})
}
