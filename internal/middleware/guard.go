package middleware

import (
	"github.com/fuzzyshak/narah/internal/models"
)

// SessionStatus describes how far session resolution has progressed for the
// current request or page view.
type SessionStatus int

const (
	// SessionLoading means the session is still being resolved; the guard
	// must defer rather than redirect prematurely.
	SessionLoading SessionStatus = iota
	// SessionResolved means resolution finished, with or without a user.
	SessionResolved
)

// Verdict is the guard's decision for a protected resource.
type Verdict int

const (
	// VerdictDefer renders neither the protected content nor a redirect.
	VerdictDefer Verdict = iota
	// VerdictSignIn redirects to sign-in, carrying the requested location.
	VerdictSignIn
	// VerdictForbidden redirects to the unauthorized view.
	VerdictForbidden
	// VerdictAllow renders the protected content.
	VerdictAllow
)

// Resolve decides access for a protected resource. It is a pure function of
// current session state, re-evaluated on every request. An empty required
// permission means only authentication is needed.
func Resolve(status SessionStatus, user *models.User, required models.Permission) Verdict {
	if status == SessionLoading {
		return VerdictDefer
	}
	if user == nil {
		return VerdictSignIn
	}
	if required != "" && !user.HasPermission(required) {
		return VerdictForbidden
	}
	return VerdictAllow
}
