package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// staticPages holds the informational page copy served to the front end.
var staticPages = map[string]map[string]string{
	"about": {
		"title": "About Narah",
		"body":  "Narah connects you with Bahrain's premier gyms, hotel fitness centers and wellness facilities through simple day-pass bookings.",
	},
	"terms": {
		"title": "Terms & Conditions",
		"body":  "Day passes are valid for a single visit on the booked date. Bookings are non-transferable. Payment is taken at checkout or at the venue, as selected.",
	},
	"contact": {
		"title": "Contact Us",
		"body":  "Questions about a booking or listing your venue? Send us a message and we will get back to you.",
	},
}

// ContentHandler serves the static informational pages.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// GetPage returns one static page by slug.
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := staticPages[chi.URLParam(r, "slug")]
	if !ok {
		respondError(w, http.StatusNotFound, "page not found")
		return
	}
	respondJSON(w, http.StatusOK, page)
}
