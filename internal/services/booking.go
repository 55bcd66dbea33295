package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/fuzzyshak/narah/internal/models"
)

// BookingRepository interface for confirmed booking data operations.
type BookingRepository interface {
	CreateBatch(reqs []*models.BookingCreateRequest) ([]*models.ConfirmedBooking, error)
	GetByUser(userID string) ([]*models.ConfirmedBooking, error)
}

// ErrAuthRequired is returned when checkout is attempted without a signed-in user.
var ErrAuthRequired = errors.New("you must be signed in to check out")

// ErrEmptyCart is returned when checkout is attempted with nothing in the cart.
var ErrEmptyCart = errors.New("your cart is empty")

// BookingService converts carts into confirmed bookings and serves history.
type BookingService struct {
	bookingRepo    BookingRepository
	paymentService PaymentService
	mailer         EmailService
}

// NewBookingService creates a new booking service.
func NewBookingService(bookingRepo BookingRepository, paymentService PaymentService, mailer EmailService) *BookingService {
	return &BookingService{
		bookingRepo:    bookingRepo,
		paymentService: paymentService,
		mailer:         mailer,
	}
}

// CheckoutResult describes a completed checkout.
type CheckoutResult struct {
	Bookings []*models.ConfirmedBooking `json:"bookings"`
	Payment  *PaymentResult             `json:"payment"`
	Total    string                     `json:"total"`
}

// Checkout turns every cart item, in insertion order, into a confirmed
// booking owned by the user. All bookings are written in one transaction;
// a failure leaves nothing persisted. The caller clears the cart on success.
func (s *BookingService) Checkout(user *models.User, cart *models.Cart, method models.PaymentMethod) (*CheckoutResult, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	total, err := cart.TotalFils()
	if err != nil {
		return nil, fmt.Errorf("failed to total cart: %w", err)
	}
	totalDisplay, err := cart.TotalDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to format cart total: %w", err)
	}

	status := method.StatusFor()
	reqs := make([]*models.BookingCreateRequest, 0, len(cart.Items))
	for _, item := range cart.Items {
		reqs = append(reqs, &models.BookingCreateRequest{
			UserID:        user.ID,
			VenueID:       item.VenueID,
			VenueName:     item.VenueName,
			PassName:      item.PassName,
			PassPrice:     item.PassPrice,
			BookingDate:   item.Date,
			BookingTime:   item.Time,
			Location:      item.Location,
			PaymentStatus: status,
		})
	}

	bookings, err := s.bookingRepo.CreateBatch(reqs)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm bookings: %w", err)
	}

	payment, err := s.paymentService.ProcessPayment(total, method, user.Email)
	if err != nil {
		return nil, fmt.Errorf("payment processing failed: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendBookingConfirmation(user.Email, user.FullName(), bookings); err != nil {
			log.Printf("warning: failed to send booking confirmation to %s: %v", user.Email, err)
		}
	}

	return &CheckoutResult{
		Bookings: bookings,
		Payment:  payment,
		Total:    totalDisplay,
	}, nil
}

// GetUserBookings lists a user's bookings ordered by booking date.
func (s *BookingService) GetUserBookings(userID string) ([]*models.ConfirmedBooking, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.bookingRepo.GetByUser(userID)
}
