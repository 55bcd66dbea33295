package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/middleware"
	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

// CheckoutHandler drives the checkout flow.
type CheckoutHandler struct {
	bookingService services.BookingServiceInterface
	store          sessions.Store
	sessionName    string

	// One checkout at a time per user; a second submission while the first
	// is still processing is rejected instead of double-booking.
	inflight   map[string]bool
	inflightMu sync.Mutex
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(bookingService services.BookingServiceInterface, store sessions.Store, sessionName string) *CheckoutHandler {
	return &CheckoutHandler{
		bookingService: bookingService,
		store:          store,
		sessionName:    sessionName,
		inflight:       make(map[string]bool),
	}
}

type checkoutRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// Checkout converts the session cart into confirmed bookings, simulates the
// payment, and clears the cart on success.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.PaymentMethod {
	case models.PaymentMethodCard, models.PaymentMethodVenue:
	default:
		respondError(w, http.StatusUnprocessableEntity, "payment method must be 'card' or 'venue'")
		return
	}

	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}
	cart := cartFromSession(session)
	if cart.IsEmpty() {
		respondError(w, http.StatusUnprocessableEntity, services.ErrEmptyCart.Error())
		return
	}

	if !h.begin(user.ID) {
		respondError(w, http.StatusConflict, "a checkout is already in progress")
		return
	}
	defer h.finish(user.ID)

	result, err := h.bookingService.Checkout(user, cart, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, services.ErrAuthRequired):
			respondError(w, http.StatusUnauthorized, err.Error())
		default:
			respondError(w, http.StatusInternalServerError,
				"an error occurred while processing your booking, please try again")
		}
		return
	}

	cart.Clear()
	if err := saveCartToSession(session, cart, w, r); err != nil {
		// Bookings are already confirmed; a stale cart cookie is recoverable.
		respondJSON(w, http.StatusCreated, result)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *CheckoutHandler) begin(userID string) bool {
	h.inflightMu.Lock()
	defer h.inflightMu.Unlock()
	if h.inflight[userID] {
		return false
	}
	h.inflight[userID] = true
	return true
}

func (h *CheckoutHandler) finish(userID string) {
	h.inflightMu.Lock()
	defer h.inflightMu.Unlock()
	delete(h.inflight, userID)
}
