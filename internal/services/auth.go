package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/utils"
)

// UserRepository interface for user profile and session data operations.
type UserRepository interface {
	Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateLastLogin(id string) error
	UpdatePassword(id, passwordHash string) error
	CreateSession(userID, sessionID string, expiresAt time.Time) error
	GetUserBySession(sessionID string) (*models.User, error)
	DeleteSession(sessionID string) error
	DeleteUserSessions(userID string) error
	DeleteExpiredSessions() error
	SetPasswordResetToken(userID, token string, expiresAt time.Time) error
	GetByPasswordResetToken(token string) (*models.User, error)
	ClearPasswordResetToken(userID string) error
}

const (
	sessionDuration         = 24 * time.Hour
	rememberSessionDuration = 30 * 24 * time.Hour
	resetTokenDuration      = time.Hour
)

// ErrInvalidCredentials is returned for a bad email/password pair without
// revealing which half was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration, sign-in and session lifecycle.
type AuthService struct {
	userRepo UserRepository
	mailer   EmailService
	now      func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo UserRepository, mailer EmailService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		mailer:   mailer,
		now:      time.Now,
	}
}

// RegisterRequest represents a user registration submission. Birthday arrives
// in the DD/MM/YYYY form format.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
	Phone     string `json:"phone"`
}

// LoginRequest represents a sign-in submission.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// AuthResponse is returned after successful authentication.
type AuthResponse struct {
	User      *models.User `json:"user"`
	SessionID string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register creates a new user account and signs it in.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateBirthday(req.Birthday, s.now()); err != nil {
		return nil, err
	}
	birthday, err := utils.ToStorageDate(req.Birthday)
	if err != nil {
		return nil, err
	}

	createReq := &models.UserCreateRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  birthday,
		Phone:     req.Phone,
		Role:      models.RoleUser,
	}
	if err := createReq.Validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(createReq, hash)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			log.Printf("warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	sessionID, expiresAt, err := s.createSession(user.ID, false)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Login authenticates a user and creates a session.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	sessionID, expiresAt, err := s.createSession(user.ID, req.RememberMe)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		log.Printf("warning: failed to record last login for %s: %v", user.ID, err)
	}

	return &AuthResponse{User: user, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// ValidateSession resolves a session token to its user.
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	user, err := s.userRepo.GetUserBySession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired session")
	}
	return user, nil
}

// Logout invalidates one session.
func (s *AuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// LogoutAllSessions invalidates every session of a user.
func (s *AuthService) LogoutAllSessions(userID string) error {
	if err := s.userRepo.DeleteUserSessions(userID); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

// RequestPasswordReset starts a reset flow. Whether the email exists is never
// revealed to the caller.
func (s *AuthService) RequestPasswordReset(email string) error {
	if err := models.ValidateEmail(email); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.userRepo.SetPasswordResetToken(user.ID, token, s.now().Add(resetTokenDuration)); err != nil {
		return err
	}

	if s.mailer != nil {
		if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
			log.Printf("warning: failed to send password reset email to %s: %v", user.Email, err)
		}
	}
	return nil
}

// CompletePasswordReset sets a new password for the token holder and signs
// out all of their sessions.
func (s *AuthService) CompletePasswordReset(token, newPassword string) error {
	if err := models.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByPasswordResetToken(token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	if err := s.userRepo.ClearPasswordResetToken(user.ID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUserSessions(user.ID); err != nil {
		log.Printf("warning: failed to revoke sessions for %s: %v", user.ID, err)
	}
	return nil
}

// CleanupExpiredSessions removes stale sessions.
func (s *AuthService) CleanupExpiredSessions() error {
	return s.userRepo.DeleteExpiredSessions()
}

func (s *AuthService) createSession(userID string, remember bool) (string, time.Time, error) {
	sessionID := uuid.NewString()
	duration := sessionDuration
	if remember {
		duration = rememberSessionDuration
	}
	expiresAt := s.now().Add(duration)

	if err := s.userRepo.CreateSession(userID, sessionID, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionID, expiresAt, nil
}
