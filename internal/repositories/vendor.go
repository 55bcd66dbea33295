package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/fuzzyshak/narah/internal/models"
)

// VendorRepository handles venue registration applications.
type VendorRepository struct {
	db *sql.DB
}

// NewVendorRepository creates a new vendor repository.
func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create persists a vendor application.
func (r *VendorRepository) Create(app *models.VendorApplication) (*models.VendorApplication, error) {
	if err := app.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	prices, err := json.Marshal(app.DayPassPrices)
	if err != nil {
		return nil, fmt.Errorf("failed to encode day pass prices: %w", err)
	}

	query := `
		INSERT INTO vendor_applications
			(venue_name, venue_email, contact_first_name, contact_last_name, venue_type,
			 facilities, other_facility, day_pass_prices, other_day_pass_name,
			 available_start_date, available_end_date, start_hour, end_hour,
			 area, city, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9,
			NULLIF($10, '')::date, NULLIF($11, '')::date, $12, $13, $14, $15, $16)
		RETURNING id, created_at`

	created := *app
	err = r.db.QueryRow(query,
		app.VenueName, app.VenueEmail, app.ContactFirstName, app.ContactLastName,
		app.VenueType, pq.Array(app.Facilities), app.OtherFacility, prices,
		app.OtherDayPassName, app.AvailableStartDate, app.AvailableEndDate,
		app.StartHour, app.EndHour, app.Area, app.City, app.Country).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor application: %w", err)
	}

	return &created, nil
}

// GetByID retrieves an application.
func (r *VendorRepository) GetByID(id string) (*models.VendorApplication, error) {
	app := &models.VendorApplication{}
	var prices []byte
	var facilities pq.StringArray

	err := r.db.QueryRow(`
		SELECT id, venue_name, venue_email, contact_first_name, contact_last_name,
			venue_type, facilities, other_facility, day_pass_prices, other_day_pass_name,
			COALESCE(to_char(available_start_date, 'YYYY-MM-DD'), ''),
			COALESCE(to_char(available_end_date, 'YYYY-MM-DD'), ''),
			start_hour, end_hour, area, city, country, created_at
		FROM vendor_applications WHERE id = $1`, id).
		Scan(&app.ID, &app.VenueName, &app.VenueEmail, &app.ContactFirstName,
			&app.ContactLastName, &app.VenueType, &facilities, &app.OtherFacility,
			&prices, &app.OtherDayPassName, &app.AvailableStartDate,
			&app.AvailableEndDate, &app.StartHour, &app.EndHour,
			&app.Area, &app.City, &app.Country, &app.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vendor application: %w", err)
	}

	app.Facilities = []string(facilities)
	if err := json.Unmarshal(prices, &app.DayPassPrices); err != nil {
		return nil, fmt.Errorf("failed to decode day pass prices: %w", err)
	}

	return app, nil
}
