package services

import (
	"log"

	"github.com/fuzzyshak/narah/internal/models"
)

// EmailService interface for outbound mail.
type EmailService interface {
	SendWelcomeEmail(email, userName string) error
	SendPasswordResetEmail(email, token string) error
	SendBookingConfirmation(email, userName string, bookings []*models.ConfirmedBooking) error
}

// LogMailer writes outbound mail to the server log instead of delivering it.
// Real delivery is out of scope for this service.
type LogMailer struct {
	FromEmail string
	FromName  string
}

// NewLogMailer creates a log-backed mailer.
func NewLogMailer(fromEmail, fromName string) *LogMailer {
	return &LogMailer{FromEmail: fromEmail, FromName: fromName}
}

func (m *LogMailer) SendWelcomeEmail(email, userName string) error {
	log.Printf("mail: welcome -> %s (%s) from %s <%s>", email, userName, m.FromName, m.FromEmail)
	return nil
}

func (m *LogMailer) SendPasswordResetEmail(email, token string) error {
	log.Printf("mail: password reset -> %s token=%s", email, token)
	return nil
}

func (m *LogMailer) SendBookingConfirmation(email, userName string, bookings []*models.ConfirmedBooking) error {
	log.Printf("mail: booking confirmation -> %s (%s), %d booking(s)", email, userName, len(bookings))
	return nil
}
