package models

import "errors"

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail indicates an account already exists for the email.
var ErrDuplicateEmail = errors.New("an account with this email already exists")
