package services

import (
	"github.com/fuzzyshak/narah/internal/models"
)

// AuthServiceInterface defines the interface for authentication services.
type AuthServiceInterface interface {
	Register(req *RegisterRequest) (*AuthResponse, error)
	Login(req *LoginRequest) (*AuthResponse, error)
	ValidateSession(sessionID string) (*models.User, error)
	Logout(sessionID string) error
	LogoutAllSessions(userID string) error
	RequestPasswordReset(email string) error
	CompletePasswordReset(token, newPassword string) error
	CleanupExpiredSessions() error
}

// VenueServiceInterface defines the interface for venue services.
type VenueServiceInterface interface {
	SearchVenues(filters models.VenueSearchFilters) ([]*models.Venue, int, error)
	GetVenueByID(id string) (*models.Venue, error)
	GetPass(venueID, passID string) (*models.DayPass, error)
	SubmitVendorApplication(app *models.VendorApplication) (*models.VendorApplication, error)
	SubmitContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error)
}

// BookingServiceInterface defines the interface for checkout and booking history.
type BookingServiceInterface interface {
	Checkout(user *models.User, cart *models.Cart, method models.PaymentMethod) (*CheckoutResult, error)
	GetUserBookings(userID string) ([]*models.ConfirmedBooking, error)
}
