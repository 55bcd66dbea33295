package repositories

import (
	"database/sql"
	"fmt"

	"github.com/fuzzyshak/narah/internal/models"
)

// ContactRepository stores contact form submissions.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create persists a contact message.
func (r *ContactRepository) Create(msg *models.ContactMessage) (*models.ContactMessage, error) {
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created := *msg
	err := r.db.QueryRow(`
		INSERT INTO contact_messages (name, email, subject, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	return &created, nil
}
