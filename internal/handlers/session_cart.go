package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/models"
)

const cartSessionKey = "cart"

// cartFromSession reads the cart out of the gorilla session, returning an
// empty cart when none is stored yet.
func cartFromSession(session *sessions.Session) *models.Cart {
	if cart, ok := session.Values[cartSessionKey].(*models.Cart); ok && cart != nil {
		return cart
	}
	return &models.Cart{}
}

// saveCartToSession stores the cart and flushes the session cookie.
func saveCartToSession(session *sessions.Session, cart *models.Cart, w http.ResponseWriter, r *http.Request) error {
	session.Values[cartSessionKey] = cart
	return session.Save(r, w)
}
