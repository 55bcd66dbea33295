package models

import (
	"errors"
	"regexp"
	"time"
)

// PaymentStatus records how a confirmed booking was (or will be) paid.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentAtVenue PaymentStatus = "pay at venue"
)

// PaymentMethod is the option chosen on the checkout form.
type PaymentMethod string

const (
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodVenue PaymentMethod = "venue"
)

// StatusFor derives the booking payment status from the chosen method.
// Card payments are settled at checkout; anything else is paid at the venue.
func (m PaymentMethod) StatusFor() PaymentStatus {
	if m == PaymentMethodCard {
		return PaymentPaid
	}
	return PaymentAtVenue
}

// ConfirmedBooking is a persisted, checked-out booking record. It is owned by
// exactly one user and immutable after creation.
type ConfirmedBooking struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id"`
	VenueID       string        `json:"venue_id" db:"venue_id"`
	VenueName     string        `json:"venue_name" db:"venue_name"`
	PassName      string        `json:"pass_name" db:"pass_name"`
	PassPrice     string        `json:"pass_price" db:"pass_price"`
	BookingDate   string        `json:"booking_date" db:"booking_date"` // YYYY-MM-DD
	BookingTime   string        `json:"booking_time" db:"booking_time"` // HH:MM
	Location      string        `json:"location" db:"location"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// BookingCreateRequest represents one booking to be written at checkout.
type BookingCreateRequest struct {
	UserID        string
	VenueID       string
	VenueName     string
	PassName      string
	PassPrice     string
	BookingDate   string
	BookingTime   string
	Location      string
	PaymentStatus PaymentStatus
}

var storageDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var bookingTimeRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Validate validates a booking creation request.
func (req *BookingCreateRequest) Validate() error {
	if req.UserID == "" {
		return errors.New("booking owner is required")
	}
	if req.VenueID == "" || req.VenueName == "" {
		return errors.New("booking venue is required")
	}
	if req.PassName == "" {
		return errors.New("booking pass is required")
	}
	if !storageDateRegex.MatchString(req.BookingDate) {
		return errors.New("booking date must be yyyy-mm-dd")
	}
	if !bookingTimeRegex.MatchString(req.BookingTime) {
		return errors.New("booking time must be hh:mm")
	}
	switch req.PaymentStatus {
	case PaymentPaid, PaymentAtVenue:
	default:
		return errors.New("invalid payment status")
	}
	return nil
}

// IsUpcoming reports whether the booking date is today or later.
func (b *ConfirmedBooking) IsUpcoming(now time.Time) bool {
	date, err := time.Parse("2006-01-02", b.BookingDate)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}
