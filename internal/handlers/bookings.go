package handlers

import (
	"net/http"
	"time"

	"github.com/fuzzyshak/narah/internal/middleware"
	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

// BookingsHandler serves a user's booking history.
type BookingsHandler struct {
	bookingService services.BookingServiceInterface
}

// NewBookingsHandler creates a new bookings handler.
func NewBookingsHandler(bookingService services.BookingServiceInterface) *BookingsHandler {
	return &BookingsHandler{bookingService: bookingService}
}

// List returns the user's confirmed bookings ordered by booking date,
// split into upcoming and past.
func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bookings, err := h.bookingService.GetUserBookings(user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}

	now := time.Now()
	upcoming := []*models.ConfirmedBooking{}
	past := []*models.ConfirmedBooking{}
	for _, booking := range bookings {
		if booking.IsUpcoming(now) {
			upcoming = append(upcoming, booking)
		} else {
			past = append(past, booking)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"upcoming": upcoming,
		"past":     past,
	})
}
