package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/utils"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(req *models.UserCreateRequest, passwordHash string) (*models.User, error) {
	args := m.Called(req, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockUserRepository) UpdatePassword(id, passwordHash string) error {
	return m.Called(id, passwordHash).Error(0)
}

func (m *MockUserRepository) CreateSession(userID, sessionID string, expiresAt time.Time) error {
	return m.Called(userID, sessionID, expiresAt).Error(0)
}

func (m *MockUserRepository) GetUserBySession(sessionID string) (*models.User, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeleteSession(sessionID string) error {
	return m.Called(sessionID).Error(0)
}

func (m *MockUserRepository) DeleteUserSessions(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockUserRepository) DeleteExpiredSessions() error {
	return m.Called().Error(0)
}

func (m *MockUserRepository) SetPasswordResetToken(userID, token string, expiresAt time.Time) error {
	return m.Called(userID, token, expiresAt).Error(0)
}

func (m *MockUserRepository) GetByPasswordResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ClearPasswordResetToken(userID string) error {
	return m.Called(userID).Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWelcomeEmail(email, userName string) error {
	return m.Called(email, userName).Error(0)
}

func (m *MockEmailService) SendPasswordResetEmail(email, token string) error {
	return m.Called(email, token).Error(0)
}

func (m *MockEmailService) SendBookingConfirmation(email, userName string, bookings []*models.ConfirmedBooking) error {
	return m.Called(email, userName, bookings).Error(0)
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestAuthService(repo *MockUserRepository, mailer *MockEmailService) *AuthService {
	svc := NewAuthService(repo, mailer)
	svc.now = func() time.Time { return testNow }
	return svc
}

func validRegisterRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:     "fatima@example.com",
		Password:  "a long enough password",
		FirstName: "Fatima",
		LastName:  "Al-Sayed",
		Birthday:  "14/03/2000",
		Phone:     "+97333112233",
	}
}

func TestRegisterSuccess(t *testing.T) {
	repo := new(MockUserRepository)
	mailer := new(MockEmailService)
	svc := newTestAuthService(repo, mailer)

	perms, _ := models.DefaultPermissions(models.RoleUser)
	created := &models.User{
		ID:          "user-1",
		Email:       "fatima@example.com",
		FirstName:   "Fatima",
		LastName:    "Al-Sayed",
		Role:        models.RoleUser,
		Permissions: perms,
	}

	repo.On("Create", mock.MatchedBy(func(req *models.UserCreateRequest) bool {
		// Birthday is converted to storage form and the role is always "user".
		return req.Birthday == "2000-03-14" && req.Role == models.RoleUser
	}), mock.AnythingOfType("string")).Return(created, nil)
	repo.On("CreateSession", "user-1", mock.AnythingOfType("string"), testNow.Add(24*time.Hour)).Return(nil)
	mailer.On("SendWelcomeEmail", "fatima@example.com", "Fatima Al-Sayed").Return(nil)

	resp, err := svc.Register(validRegisterRequest())

	require.NoError(t, err)
	assert.Equal(t, created, resp.User)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, testNow.Add(24*time.Hour), resp.ExpiresAt)
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestRegisterRejectsUnderageUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	req := validRegisterRequest()
	req.Birthday = "31/08/2010" // turns 16 the day after testNow

	_, err := svc.Register(req)

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterRejectsDisplayFormatStoredWrong(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	req := validRegisterRequest()
	req.Birthday = "2000-03-14" // storage format where form format is expected

	_, err := svc.Register(req)
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, models.ErrDuplicateEmail)

	_, err := svc.Register(validRegisterRequest())

	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginSuccess(t *testing.T) {
	hash, err := utils.HashPassword("a long enough password")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	user := &models.User{ID: "user-1", Email: "fatima@example.com", PasswordHash: hash}
	repo.On("GetByEmail", "fatima@example.com").Return(user, nil)
	repo.On("CreateSession", "user-1", mock.AnythingOfType("string"), testNow.Add(24*time.Hour)).Return(nil)
	repo.On("UpdateLastLogin", "user-1").Return(nil)

	resp, err := svc.Login(&LoginRequest{Email: "fatima@example.com", Password: "a long enough password"})

	require.NoError(t, err)
	assert.Equal(t, user, resp.User)
	assert.NotEmpty(t, resp.SessionID)
	repo.AssertExpectations(t)
}

func TestLoginRememberMeExtendsSession(t *testing.T) {
	hash, err := utils.HashPassword("a long enough password")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	user := &models.User{ID: "user-1", Email: "fatima@example.com", PasswordHash: hash}
	repo.On("GetByEmail", "fatima@example.com").Return(user, nil)
	repo.On("CreateSession", "user-1", mock.AnythingOfType("string"), testNow.Add(30*24*time.Hour)).Return(nil)
	repo.On("UpdateLastLogin", "user-1").Return(nil)

	resp, err := svc.Login(&LoginRequest{
		Email:      "fatima@example.com",
		Password:   "a long enough password",
		RememberMe: true,
	})

	require.NoError(t, err)
	assert.Equal(t, testNow.Add(30*24*time.Hour), resp.ExpiresAt)
	repo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("the real password")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	user := &models.User{ID: "user-1", Email: "fatima@example.com", PasswordHash: hash}
	repo.On("GetByEmail", "fatima@example.com").Return(user, nil)

	_, err = svc.Login(&LoginRequest{Email: "fatima@example.com", Password: "a wrong password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	repo.On("GetByEmail", "nobody@example.com").Return(nil, models.ErrNotFound)

	_, err := svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "whatever else"})

	// The same error as a bad password, so callers cannot probe for accounts.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginEmptyCredentials(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	_, err := svc.Login(&LoginRequest{})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestValidateSession(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	user := &models.User{ID: "user-1"}
	repo.On("GetUserBySession", "token-1").Return(user, nil)
	repo.On("GetUserBySession", "expired").Return(nil, errors.New("sql: no rows in result set"))

	got, err := svc.ValidateSession("token-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = svc.ValidateSession("expired")
	assert.Error(t, err)

	_, err = svc.ValidateSession("")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetUserBySession", "")
}

func TestLogout(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	repo.On("DeleteSession", "token-1").Return(nil)

	assert.NoError(t, svc.Logout("token-1"))
	assert.Error(t, svc.Logout(""))
	repo.AssertExpectations(t)
}

func TestRequestPasswordResetKnownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	mailer := new(MockEmailService)
	svc := newTestAuthService(repo, mailer)

	user := &models.User{ID: "user-1", Email: "fatima@example.com"}
	repo.On("GetByEmail", "fatima@example.com").Return(user, nil)
	repo.On("SetPasswordResetToken", "user-1", mock.AnythingOfType("string"), testNow.Add(time.Hour)).Return(nil)
	mailer.On("SendPasswordResetEmail", "fatima@example.com", mock.AnythingOfType("string")).Return(nil)

	require.NoError(t, svc.RequestPasswordReset("fatima@example.com"))
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestRequestPasswordResetUnknownEmailSaysNothing(t *testing.T) {
	repo := new(MockUserRepository)
	mailer := new(MockEmailService)
	svc := newTestAuthService(repo, mailer)

	repo.On("GetByEmail", "nobody@example.com").Return(nil, models.ErrNotFound)

	assert.NoError(t, svc.RequestPasswordReset("nobody@example.com"))
	repo.AssertNotCalled(t, "SetPasswordResetToken", mock.Anything, mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything)
}

func TestCompletePasswordReset(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	user := &models.User{ID: "user-1", Email: "fatima@example.com"}
	repo.On("GetByPasswordResetToken", "reset-token").Return(user, nil)
	repo.On("UpdatePassword", "user-1", mock.AnythingOfType("string")).Return(nil)
	repo.On("ClearPasswordResetToken", "user-1").Return(nil)
	repo.On("DeleteUserSessions", "user-1").Return(nil)

	require.NoError(t, svc.CompletePasswordReset("reset-token", "a brand new password"))
	repo.AssertExpectations(t)
}

func TestCompletePasswordResetBadToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	repo.On("GetByPasswordResetToken", "stale").Return(nil, models.ErrNotFound)

	err := svc.CompletePasswordReset("stale", "a brand new password")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
}

func TestCompletePasswordResetWeakPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, new(MockEmailService))

	err := svc.CompletePasswordReset("reset-token", "short")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetByPasswordResetToken", mock.Anything)
}
