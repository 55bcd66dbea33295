package handlers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
	"github.com/fuzzyshak/narah/internal/utils"
)

var displayDateRegex = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var timeSlotRegex = regexp.MustCompile(`^\d{2}:\d{2}$`)

// CartHandler manages the session cart.
type CartHandler struct {
	venueService services.VenueServiceInterface
	store        sessions.Store
	sessionName  string
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(venueService services.VenueServiceInterface, store sessions.Store, sessionName string) *CartHandler {
	return &CartHandler{
		venueService: venueService,
		store:        store,
		sessionName:  sessionName,
	}
}

// addToCartRequest selects a venue day pass for a date and time slot.
// The date may arrive in form format (dd/mm/yyyy) or storage format.
type addToCartRequest struct {
	VenueID string `json:"venue_id"`
	PassID  string `json:"pass_id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// ViewCart returns the cart contents and total.
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}
	h.respondCart(w, http.StatusOK, cartFromSession(session))
}

// AddToCart adds a pending booking to the session cart. Venue and pass
// details are resolved server-side so the stored price is authoritative.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := normalizeBookingDate(req.Date)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if !timeSlotRegex.MatchString(req.Time) {
		respondError(w, http.StatusUnprocessableEntity, "booking time must be hh:mm")
		return
	}

	venue, err := h.venueService.GetVenueByID(req.VenueID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, http.StatusNotFound, "venue not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}

	pass, err := h.venueService.GetPass(req.VenueID, req.PassID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, http.StatusNotFound, "day pass not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load day pass")
		return
	}

	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := cartFromSession(session)
	cart.AddItem(models.CartItem{
		VenueID:   venue.ID,
		VenueName: venue.Name,
		PassName:  pass.Name,
		PassPrice: pass.Price,
		Date:      date,
		Time:      req.Time,
		Location:  venue.Location,
	})

	if err := saveCartToSession(session, cart, w, r); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.respondCart(w, http.StatusCreated, cart)
}

// RemoveFromCart removes one item by id. Unknown ids are a no-op.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := cartFromSession(session)
	cart.RemoveItem(chi.URLParam(r, "id"))

	if err := saveCartToSession(session, cart, w, r); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.respondCart(w, http.StatusOK, cart)
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "session error")
		return
	}

	cart := cartFromSession(session)
	cart.Clear()

	if err := saveCartToSession(session, cart, w, r); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.respondCart(w, http.StatusOK, cart)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, cart *models.Cart) {
	total, err := cart.TotalDisplay()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to total cart")
		return
	}
	respondJSON(w, status, map[string]interface{}{
		"items": cart.Items,
		"total": total,
	})
}

// normalizeBookingDate accepts dd/mm/yyyy or yyyy-mm-dd and returns the
// storage form.
func normalizeBookingDate(date string) (string, error) {
	if displayDateRegex.MatchString(date) {
		return utils.ToStorageDate(date)
	}
	if isoDateRegex.MatchString(date) {
		// Round-trip to reject impossible dates.
		display, err := utils.ToDisplayDate(date)
		if err != nil {
			return "", err
		}
		return utils.ToStorageDate(display)
	}
	return "", errors.New("booking date must be dd/mm/yyyy")
}
