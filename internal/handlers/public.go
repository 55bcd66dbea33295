package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

// Venue listings show six cards per page, as the storefront renders them.
const venuesPerPage = 6

// PublicHandler serves the unauthenticated browsing surface.
type PublicHandler struct {
	venueService services.VenueServiceInterface
}

// NewPublicHandler creates a new public handler.
func NewPublicHandler(venueService services.VenueServiceInterface) *PublicHandler {
	return &PublicHandler{venueService: venueService}
}

// Home returns the featured venues for the landing page.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	venues, _, err := h.venueService.SearchVenues(models.VenueSearchFilters{Limit: venuesPerPage})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load venues")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"featured": venues})
}

// ListVenues lists venues with free-text search (?q=) and paging (?page=).
func (h *PublicHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	filters := models.VenueSearchFilters{
		Query:  r.URL.Query().Get("q"),
		Limit:  venuesPerPage,
		Offset: (page - 1) * venuesPerPage,
	}

	venues, total, err := h.venueService.SearchVenues(filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to search venues")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"venues": venues,
		"total":  total,
		"page":   page,
		"pages":  (total + venuesPerPage - 1) / venuesPerPage,
	})
}

// GetVenue returns one venue with its day passes and gallery.
func (h *PublicHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venueService.GetVenueByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			respondError(w, http.StatusNotFound, "venue not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load venue")
		return
	}
	respondJSON(w, http.StatusOK, venue)
}

// SubmitContact stores a contact form message.
func (h *PublicHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg models.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.venueService.SubmitContactMessage(&msg)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
