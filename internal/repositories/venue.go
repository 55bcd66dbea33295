package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/fuzzyshak/narah/internal/models"
)

// VenueRepository handles venue and day pass data operations.
type VenueRepository struct {
	db *sql.DB
}

// NewVenueRepository creates a new venue repository.
func NewVenueRepository(db *sql.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

// Search lists venues matching the free-text query, newest first, with their
// day passes and gallery attached. An empty query lists everything.
func (r *VenueRepository) Search(filters models.VenueSearchFilters) ([]*models.Venue, int, error) {
	where := ""
	args := []interface{}{}
	if filters.Query != "" {
		where = `WHERE name ILIKE $1 OR description ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+filters.Query+"%")
	}

	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM venues `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count venues: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, location, image_url, rating, created_at
		FROM venues %s
		ORDER BY created_at, name
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search venues: %w", err)
	}
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		venue := &models.Venue{}
		if err := rows.Scan(&venue.ID, &venue.Name, &venue.Description,
			&venue.Location, &venue.ImageURL, &venue.Rating, &venue.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan venue: %w", err)
		}
		venues = append(venues, venue)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read venues: %w", err)
	}

	if err := r.attachDetails(venues); err != nil {
		return nil, 0, err
	}

	return venues, total, nil
}

// GetByID retrieves a single venue with passes and gallery.
func (r *VenueRepository) GetByID(id string) (*models.Venue, error) {
	venue := &models.Venue{}
	err := r.db.QueryRow(`
		SELECT id, name, description, location, image_url, rating, created_at
		FROM venues WHERE id = $1`, id).
		Scan(&venue.ID, &venue.Name, &venue.Description,
			&venue.Location, &venue.ImageURL, &venue.Rating, &venue.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	if err := r.attachDetails([]*models.Venue{venue}); err != nil {
		return nil, err
	}
	return venue, nil
}

// GetPass retrieves one day pass of a venue.
func (r *VenueRepository) GetPass(venueID, passID string) (*models.DayPass, error) {
	pass := &models.DayPass{}
	err := r.db.QueryRow(`
		SELECT id, venue_id, name, description, price
		FROM day_passes WHERE id = $1 AND venue_id = $2`, passID, venueID).
		Scan(&pass.ID, &pass.VenueID, &pass.Name, &pass.Description, &pass.Price)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day pass: %w", err)
	}
	return pass, nil
}

// attachDetails loads day passes and gallery images for the given venues.
func (r *VenueRepository) attachDetails(venues []*models.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	ids := make([]string, len(venues))
	byID := make(map[string]*models.Venue, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
		byID[v.ID] = v
	}

	rows, err := r.db.Query(`
		SELECT id, venue_id, name, description, price
		FROM day_passes WHERE venue_id = ANY($1) ORDER BY name`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load day passes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		pass := models.DayPass{}
		if err := rows.Scan(&pass.ID, &pass.VenueID, &pass.Name, &pass.Description, &pass.Price); err != nil {
			return fmt.Errorf("failed to scan day pass: %w", err)
		}
		if venue, ok := byID[pass.VenueID]; ok {
			venue.Passes = append(venue.Passes, pass)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read day passes: %w", err)
	}

	galleryRows, err := r.db.Query(`
		SELECT venue_id, image_url
		FROM venue_gallery WHERE venue_id = ANY($1) ORDER BY venue_id, position`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load venue gallery: %w", err)
	}
	defer galleryRows.Close()
	for galleryRows.Next() {
		var venueID, imageURL string
		if err := galleryRows.Scan(&venueID, &imageURL); err != nil {
			return fmt.Errorf("failed to scan gallery image: %w", err)
		}
		if venue, ok := byID[venueID]; ok {
			venue.Gallery = append(venue.Gallery, imageURL)
		}
	}
	return galleryRows.Err()
}
