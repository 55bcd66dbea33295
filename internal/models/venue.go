package models

import (
	"errors"
	"time"
)

// Venue represents a bookable fitness facility.
type Venue struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Location    string    `json:"location" db:"location"`
	ImageURL    string    `json:"image" db:"image_url"`
	Gallery     []string  `json:"gallery,omitempty"`
	Rating      int       `json:"rating,omitempty" db:"rating"`
	Passes      []DayPass `json:"prices,omitempty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DayPass is a priced access option to a venue valid for a single visit.
type DayPass struct {
	ID          string `json:"id" db:"id"`
	VenueID     string `json:"venue_id" db:"venue_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Price       string `json:"price" db:"price"` // display form, "BD 11.000"
}

// VenueSearchFilters represents listing filters for venues.
type VenueSearchFilters struct {
	Query  string // free-text match against name, description and location
	Limit  int
	Offset int
}

// VendorApplication is a venue registration form submission.
type VendorApplication struct {
	ID                 string            `json:"id" db:"id"`
	VenueName          string            `json:"venue_name" db:"venue_name"`
	VenueEmail         string            `json:"venue_email" db:"venue_email"`
	ContactFirstName   string            `json:"contact_first_name" db:"contact_first_name"`
	ContactLastName    string            `json:"contact_last_name" db:"contact_last_name"`
	VenueType          string            `json:"venue_type" db:"venue_type"`
	Facilities         []string          `json:"facilities"`
	OtherFacility      string            `json:"other_facility,omitempty" db:"other_facility"`
	DayPassPrices      map[string]string `json:"day_pass_prices"` // pass id -> "BD x.xxx"
	OtherDayPassName   string            `json:"other_day_pass_name,omitempty" db:"other_day_pass_name"`
	AvailableStartDate string            `json:"available_start_date" db:"available_start_date"` // YYYY-MM-DD
	AvailableEndDate   string            `json:"available_end_date" db:"available_end_date"`
	StartHour          int               `json:"start_hour" db:"start_hour"` // 0..23
	EndHour            int               `json:"end_hour" db:"end_hour"`
	Area               string            `json:"area" db:"area"`
	City               string            `json:"city" db:"city"`
	Country            string            `json:"country" db:"country"`
	CreatedAt          time.Time         `json:"created_at" db:"created_at"`
}

// Validate validates a vendor application submission.
func (a *VendorApplication) Validate() error {
	if a.VenueName == "" {
		return errors.New("venue name is required")
	}
	if err := ValidateEmail(a.VenueEmail); err != nil {
		return err
	}
	if a.ContactFirstName == "" || a.ContactLastName == "" {
		return errors.New("contact name is required")
	}
	if a.VenueType == "" {
		return errors.New("venue type is required")
	}
	if a.StartHour < 0 || a.StartHour > 23 || a.EndHour < 0 || a.EndHour > 23 {
		return errors.New("opening hours must be between 0 and 23")
	}
	if len(a.DayPassPrices) == 0 {
		return errors.New("at least one day pass option is required")
	}
	if a.Area == "" || a.City == "" || a.Country == "" {
		return errors.New("venue address is incomplete")
	}
	return nil
}
