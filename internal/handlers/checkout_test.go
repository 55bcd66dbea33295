package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fuzzyshak/narah/internal/middleware"
	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Checkout(user *models.User, cart *models.Cart, method models.PaymentMethod) (*services.CheckoutResult, error) {
	args := m.Called(user, cart, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckoutResult), args.Error(1)
}

func (m *MockBookingService) GetUserBookings(userID string) ([]*models.ConfirmedBooking, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ConfirmedBooking), args.Error(1)
}

func signedInUser() *models.User {
	perms, _ := models.DefaultPermissions(models.RoleUser)
	return &models.User{
		ID:          "user-1",
		Email:       "fatima@example.com",
		FirstName:   "Fatima",
		LastName:    "Al-Sayed",
		Role:        models.RoleUser,
		Permissions: perms,
	}
}

// checkoutRequestWith builds a POST /checkout request authenticated as the
// given user, with a session cookie already holding the given cart.
func checkoutRequestWith(t *testing.T, store sessions.Store, user *models.User, cart *models.Cart, body string) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewReader([]byte(body)))
	r.Header.Set("Content-Type", "application/json")

	if cart != nil {
		seed := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		session, err := store.Get(seed, testSessionName)
		require.NoError(t, err)
		require.NoError(t, saveCartToSession(session, cart, rec, seed))
		for _, c := range rec.Result().Cookies() {
			r.AddCookie(c)
		}
	}

	if user != nil {
		r = r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
	}
	return r
}

func twoItemCart() *models.Cart {
	cart := &models.Cart{}
	cart.AddItem(models.CartItem{
		VenueID: "venue-1", VenueName: "The Diplomat Radisson Blu",
		PassName: "Gym Day Pass", PassPrice: "BD 11.000",
		Date: "2026-09-15", Time: "10:00", Location: "Manama",
	})
	cart.AddItem(models.CartItem{
		VenueID: "venue-2", VenueName: "Vida Beach Hotel",
		PassName: "Pool Day Pass", PassPrice: "BD 17.000",
		Date: "2026-09-16", Time: "14:00", Location: "Muharraq",
	})
	return cart
}

func TestCheckoutHappyPath(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	user := signedInUser()
	result := &services.CheckoutResult{
		Bookings: []*models.ConfirmedBooking{
			{ID: "booking-1", PassName: "Gym Day Pass", PaymentStatus: models.PaymentPaid},
			{ID: "booking-2", PassName: "Pool Day Pass", PaymentStatus: models.PaymentPaid},
		},
		Payment: &services.PaymentResult{Status: "success", AmountFils: 28000},
		Total:   "BD 28.000",
	}

	var checkedOut *models.Cart
	bookingService.On("Checkout", user, mock.Anything, models.PaymentMethodCard).
		Run(func(args mock.Arguments) {
			checkedOut = args.Get(1).(*models.Cart)
		}).Return(result, nil)

	rec := httptest.NewRecorder()
	r := checkoutRequestWith(t, store, user, twoItemCart(), `{"payment_method":"card"}`)
	h.Checkout(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp services.CheckoutResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "BD 28.000", resp.Total)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "Gym Day Pass", resp.Bookings[0].PassName)

	// The service saw the full cart in insertion order.
	require.NotNil(t, checkedOut)
	require.Len(t, checkedOut.Items, 2)
	assert.Equal(t, "Gym Day Pass", checkedOut.Items[0].PassName)

	// The response rewrites the session cookie with an emptied cart.
	assert.NotEmpty(t, rec.Result().Cookies())
	bookingService.AssertExpectations(t)
}

func TestCheckoutRequiresAuthentication(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	rec := httptest.NewRecorder()
	r := checkoutRequestWith(t, store, nil, twoItemCart(), `{"payment_method":"card"}`)
	h.Checkout(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	bookingService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutRejectsEmptyCartBeforeService(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	rec := httptest.NewRecorder()
	r := checkoutRequestWith(t, store, signedInUser(), nil, `{"payment_method":"card"}`)
	h.Checkout(rec, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	bookingService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutValidatesPaymentMethod(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown method", `{"payment_method":"cheque"}`, http.StatusUnprocessableEntity},
		{"missing method", `{}`, http.StatusUnprocessableEntity},
		{"malformed body", `{"payment_method":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := checkoutRequestWith(t, store, signedInUser(), twoItemCart(), tt.body)
			h.Checkout(rec, r)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
	bookingService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutServiceFailure(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	bookingService.On("Checkout", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("pq: connection refused"))

	rec := httptest.NewRecorder()
	r := checkoutRequestWith(t, store, signedInUser(), twoItemCart(), `{"payment_method":"card"}`)
	h.Checkout(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "please try again")
}

func TestCheckoutRejectsConcurrentSubmission(t *testing.T) {
	h := NewCheckoutHandler(new(MockBookingService), newTestStore(), testSessionName)

	require.True(t, h.begin("user-1"))
	assert.False(t, h.begin("user-1"), "second submission while the first is in flight")
	assert.True(t, h.begin("user-2"), "other users are unaffected")

	h.finish("user-1")
	assert.True(t, h.begin("user-1"), "finished checkouts release the slot")
}

func TestCheckoutPayAtVenue(t *testing.T) {
	store := newTestStore()
	bookingService := new(MockBookingService)
	h := NewCheckoutHandler(bookingService, store, testSessionName)

	result := &services.CheckoutResult{
		Bookings: []*models.ConfirmedBooking{
			{ID: "booking-1", PaymentStatus: models.PaymentAtVenue},
		},
		Payment: &services.PaymentResult{Status: "deferred"},
		Total:   "BD 11.000",
	}
	bookingService.On("Checkout", mock.Anything, mock.Anything, models.PaymentMethodVenue).
		Return(result, nil)

	rec := httptest.NewRecorder()
	r := checkoutRequestWith(t, store, signedInUser(), twoItemCart(), `{"payment_method":"venue"}`)
	h.Checkout(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	bookingService.AssertExpectations(t)
}
