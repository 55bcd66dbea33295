package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fuzzyshak/narah/internal/models"
)

// BookingRepository handles confirmed booking data operations.
type BookingRepository struct {
	db *sql.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, user_id, venue_id, venue_name, pass_name, pass_price,
	to_char(booking_date, 'YYYY-MM-DD'), booking_time, location, payment_status, created_at`

// CreateBatch writes a set of bookings in a single transaction. Either every
// booking is persisted or none are.
func (r *BookingRepository) CreateBatch(reqs []*models.BookingCreateRequest) ([]*models.ConfirmedBooking, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("no bookings to create")
	}
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO confirmed_bookings
			(user_id, venue_id, venue_name, pass_name, pass_price, booking_date, booking_time, location, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns

	bookings := make([]*models.ConfirmedBooking, 0, len(reqs))
	for _, req := range reqs {
		booking := &models.ConfirmedBooking{}
		err := tx.QueryRow(query,
			req.UserID, req.VenueID, req.VenueName, req.PassName, req.PassPrice,
			req.BookingDate, req.BookingTime, req.Location, req.PaymentStatus).
			Scan(&booking.ID, &booking.UserID, &booking.VenueID, &booking.VenueName,
				&booking.PassName, &booking.PassPrice, &booking.BookingDate,
				&booking.BookingTime, &booking.Location, &booking.PaymentStatus,
				&booking.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bookings: %w", err)
	}

	return bookings, nil
}

// GetByUser lists a user's bookings ordered by booking date ascending.
func (r *BookingRepository) GetByUser(userID string) ([]*models.ConfirmedBooking, error) {
	rows, err := r.db.Query(`
		SELECT `+bookingColumns+`
		FROM confirmed_bookings
		WHERE user_id = $1
		ORDER BY booking_date, booking_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.ConfirmedBooking
	for rows.Next() {
		booking := &models.ConfirmedBooking{}
		if err := rows.Scan(&booking.ID, &booking.UserID, &booking.VenueID,
			&booking.VenueName, &booking.PassName, &booking.PassPrice,
			&booking.BookingDate, &booking.BookingTime, &booking.Location,
			&booking.PaymentStatus, &booking.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
