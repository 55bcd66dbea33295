package handlers

import (
	"net/http"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
	"github.com/fuzzyshak/narah/internal/utils"
)

// VendorHandler handles venue registration applications.
type VendorHandler struct {
	venueService services.VenueServiceInterface
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(venueService services.VenueServiceInterface) *VendorHandler {
	return &VendorHandler{venueService: venueService}
}

// vendorApplicationRequest mirrors the registration form. Dates arrive in
// the dd/mm/yyyy form format.
type vendorApplicationRequest struct {
	VenueName          string            `json:"venue_name"`
	VenueEmail         string            `json:"venue_email"`
	ContactFirstName   string            `json:"contact_first_name"`
	ContactLastName    string            `json:"contact_last_name"`
	VenueType          string            `json:"venue_type"`
	Facilities         []string          `json:"facilities"`
	OtherFacility      string            `json:"other_facility"`
	DayPassPrices      map[string]string `json:"day_pass_prices"`
	OtherDayPassName   string            `json:"other_day_pass_name"`
	AvailableStartDate string            `json:"available_start_date"`
	AvailableEndDate   string            `json:"available_end_date"`
	StartHour          int               `json:"start_hour"`
	EndHour            int               `json:"end_hour"`
	Area               string            `json:"area"`
	City               string            `json:"city"`
	Country            string            `json:"country"`
}

// Submit stores a venue registration application.
func (h *VendorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req vendorApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app := &models.VendorApplication{
		VenueName:        req.VenueName,
		VenueEmail:       req.VenueEmail,
		ContactFirstName: req.ContactFirstName,
		ContactLastName:  req.ContactLastName,
		VenueType:        req.VenueType,
		Facilities:       req.Facilities,
		OtherFacility:    req.OtherFacility,
		DayPassPrices:    req.DayPassPrices,
		OtherDayPassName: req.OtherDayPassName,
		StartHour:        req.StartHour,
		EndHour:          req.EndHour,
		Area:             req.Area,
		City:             req.City,
		Country:          req.Country,
	}

	for _, span := range []struct {
		display string
		dest    *string
	}{
		{req.AvailableStartDate, &app.AvailableStartDate},
		{req.AvailableEndDate, &app.AvailableEndDate},
	} {
		if span.display == "" {
			continue
		}
		stored, err := utils.ToStorageDate(span.display)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		*span.dest = stored
	}

	created, err := h.venueService.SubmitVendorApplication(app)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, created)
}
