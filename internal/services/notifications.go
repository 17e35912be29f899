package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/greenleaf/garden-api/internal/models"
)

var ErrSMSDisabled = errors.New("sms notifications are not configured")

// NotificationService texts customers about their appointments through the
// Textbelt HTTP API.
type NotificationService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewNotificationService(apiKey, endpoint string, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With("component", "notifications"),
	}
}

func (s *NotificationService) Enabled() bool {
	return s != nil && s.apiKey != "" && s.endpoint != ""
}

// NotifyAppointment sends the confirmation or cancellation text in the
// background so the API response is not held up by Textbelt.
func (s *NotificationService) NotifyAppointment(apt *models.Appointment, serviceName string) {
	if !s.Enabled() {
		return
	}
	if apt.Phone == "" {
		s.logger.Info("sms not sent: appointment has no phone number", "appointmentId", apt.ID)
		return
	}
	msg := AppointmentMessage(apt, serviceName)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.SendSMS(ctx, apt.Phone, msg); err != nil {
			s.logger.Warn("sms delivery failed", "appointmentId", apt.ID, "error", err)
		}
	}()
}

// AppointmentMessage is the text sent for an appointment in its current status.
func AppointmentMessage(apt *models.Appointment, serviceName string) string {
	when := apt.Date.Format("Jan 2")
	if apt.Time != "" {
		when += " at " + apt.Time
	}
	switch apt.Status {
	case models.AppointmentCancelled:
		return fmt.Sprintf("Appointment Cancelled: %s for %s on %s.", serviceName, apt.Name, when)
	case models.AppointmentConfirmed:
		return fmt.Sprintf("Appointment Confirmed: %s for %s on %s.", serviceName, apt.Name, when)
	default:
		return fmt.Sprintf("Booking Received: %s for %s on %s. We will confirm shortly.", serviceName, apt.Name, when)
	}
}

type textbeltResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SendSMS posts one message to Textbelt and reports whether it was accepted.
func (s *NotificationService) SendSMS(ctx context.Context, phone, message string) error {
	if !s.Enabled() {
		return ErrSMSDisabled
	}

	postBody, err := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.apiKey,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(postBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("textbelt request: %w", err)
	}
	defer resp.Body.Close()

	var result textbeltResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decoding textbelt response (status %d): %w", resp.StatusCode, err)
	}
	if !result.Success {
		return fmt.Errorf("textbelt rejected message: %s", result.Error)
	}

	s.logger.Info("sms sent", "phone", phone)
	return nil
}
