package services

import (
	"github.com/fuzzyshak/narah/internal/models"
)

// VenueRepository interface for venue data operations.
type VenueRepository interface {
	Search(filters models.VenueSearchFilters) ([]*models.Venue, int, error)
	GetByID(id string) (*models.Venue, error)
	GetPass(venueID, passID string) (*models.DayPass, error)
}

// VendorRepository interface for venue registration applications.
type VendorRepository interface {
	Create(app *models.VendorApplication) (*models.VendorApplication, error)
}

// ContactRepository interface for contact form submissions.
type ContactRepository interface {
	Create(msg *models.ContactMessage) (*models.ContactMessage, error)
}

// VenueService handles venue browsing and vendor onboarding.
type VenueService struct {
	venueRepo   VenueRepository
	vendorRepo  VendorRepository
	contactRepo ContactRepository
}

// NewVenueService creates a new venue service.
func NewVenueService(venueRepo VenueRepository, vendorRepo VendorRepository, contactRepo ContactRepository) *VenueService {
	return &VenueService{
		venueRepo:   venueRepo,
		vendorRepo:  vendorRepo,
		contactRepo: contactRepo,
	}
}

// SearchVenues lists venues matching the free-text query.
func (s *VenueService) SearchVenues(filters models.VenueSearchFilters) ([]*models.Venue, int, error) {
	return s.venueRepo.Search(filters)
}

// GetVenueByID retrieves one venue with its passes and gallery.
func (s *VenueService) GetVenueByID(id string) (*models.Venue, error) {
	return s.venueRepo.GetByID(id)
}

// GetPass retrieves one day pass of a venue.
func (s *VenueService) GetPass(venueID, passID string) (*models.DayPass, error) {
	return s.venueRepo.GetPass(venueID, passID)
}

// SubmitVendorApplication stores a venue registration form.
func (s *VenueService) SubmitVendorApplication(app *models.VendorApplication) (*models.VendorApplication, error) {
	return s.vendorRepo.Create(app)
}

// SubmitContactMessage stores a contact form submission.
func (s *VenueService) SubmitContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error) {
	return s.contactRepo.Create(msg)
}
