package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/fuzzyshak/narah/internal/models"
)

// UserRepository handles user profile and session data operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, role,
	COALESCE(to_char(birthday, 'YYYY-MM-DD'), ''), COALESCE(phone, ''), created_at, last_login`

// Create inserts a new user profile. The password hash must already be
// computed by the caller.
func (r *UserRepository) Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO user_profiles (email, password_hash, first_name, last_name, role, birthday, phone)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::date, NULLIF($7, ''))
		RETURNING ` + userColumns

	row := r.db.QueryRow(query,
		req.Email, passwordHash, req.FirstName, req.LastName, req.Role, req.Birthday, req.Phone)

	user, err := scanUser(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, models.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM user_profiles WHERE id = $1`, id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM user_profiles WHERE email = $1`, email)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateLastLogin records a successful sign-in.
func (r *UserRepository) UpdateLastLogin(id string) error {
	if _, err := r.db.Exec(`UPDATE user_profiles SET last_login = now() WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(id, passwordHash string) error {
	if _, err := r.db.Exec(`UPDATE user_profiles SET password_hash = $1 WHERE id = $2`, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession stores a server-side session token.
func (r *UserRepository) CreateSession(userID, sessionID string, expiresAt time.Time) error {
	_, err := r.db.Exec(
		`INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)`,
		sessionID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetUserBySession resolves a session token to its user, ignoring expired rows.
func (r *UserRepository) GetUserBySession(sessionID string) (*models.User, error) {
	query := `
		SELECT ` + qualifiedUserColumns("u") + `
		FROM user_profiles u
		JOIN sessions s ON s.user_id = u.id
		WHERE s.id = $1 AND s.expires_at > now()`

	user, err := scanUser(r.db.QueryRow(query, sessionID))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	return user, nil
}

// DeleteSession removes a session token.
func (r *UserRepository) DeleteSession(sessionID string) error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteUserSessions removes every session belonging to a user.
func (r *UserRepository) DeleteUserSessions(userID string) error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes sessions past their expiry.
func (r *UserRepository) DeleteExpiredSessions() error {
	if _, err := r.db.Exec(`DELETE FROM sessions WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// SetPasswordResetToken stores a reset token with its expiry.
func (r *UserRepository) SetPasswordResetToken(userID, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(
		`UPDATE user_profiles SET password_reset_token = $1, password_reset_expires = $2 WHERE id = $3`,
		token, expiresAt, userID)
	if err != nil {
		return fmt.Errorf("failed to set password reset token: %w", err)
	}
	return nil
}

// GetByPasswordResetToken retrieves the user holding an unexpired reset token.
func (r *UserRepository) GetByPasswordResetToken(token string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM user_profiles
		WHERE password_reset_token = $1 AND password_reset_expires > now()`

	user, err := scanUser(r.db.QueryRow(query, token))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}
	return user, nil
}

// ClearPasswordResetToken invalidates a user's reset token.
func (r *UserRepository) ClearPasswordResetToken(userID string) error {
	_, err := r.db.Exec(
		`UPDATE user_profiles SET password_reset_token = NULL, password_reset_expires = NULL WHERE id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("failed to clear password reset token: %w", err)
	}
	return nil
}

func qualifiedUserColumns(alias string) string {
	return alias + `.id, ` + alias + `.email, ` + alias + `.password_hash, ` +
		alias + `.first_name, ` + alias + `.last_name, ` + alias + `.role, ` +
		`COALESCE(to_char(` + alias + `.birthday, 'YYYY-MM-DD'), ''), COALESCE(` + alias + `.phone, ''), ` +
		alias + `.created_at, ` + alias + `.last_login`
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanUser reads one user row and derives the permission set from the role.
// A role without a permission table entry is a data-integrity bug.
func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Role,
		&user.Birthday, &user.Phone, &user.CreatedAt, &user.LastLogin)
	if err != nil {
		return nil, err
	}

	perms, err := models.DefaultPermissions(user.Role)
	if err != nil {
		return nil, fmt.Errorf("corrupt user record %s: %w", user.ID, err)
	}
	user.Permissions = perms

	return user, nil
}
