package utils

import (
	"fmt"
	"time"
)

const (
	// DisplayDateLayout is the DD/MM/YYYY format used on forms.
	DisplayDateLayout = "02/01/2006"
	// StorageDateLayout is the ISO format stored in the database.
	StorageDateLayout = "2006-01-02"
)

// MinimumAge is the youngest a user may be to register.
const MinimumAge = 16

// ToStorageDate converts a user-entered DD/MM/YYYY date to YYYY-MM-DD.
func ToStorageDate(display string) (string, error) {
	t, err := time.Parse(DisplayDateLayout, display)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected dd/mm/yyyy", display)
	}
	return t.Format(StorageDateLayout), nil
}

// ToDisplayDate converts a stored YYYY-MM-DD date back to DD/MM/YYYY.
func ToDisplayDate(storage string) (string, error) {
	t, err := time.Parse(StorageDateLayout, storage)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected yyyy-mm-dd", storage)
	}
	return t.Format(DisplayDateLayout), nil
}

// Age returns full years elapsed between birth and now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	// Not yet had this year's birthday.
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// ValidateBirthday checks a DD/MM/YYYY birthday: it must parse, not be in the
// future, and yield an age of at least MinimumAge as of now.
func ValidateBirthday(display string, now time.Time) error {
	birth, err := time.Parse(DisplayDateLayout, display)
	if err != nil {
		return fmt.Errorf("invalid birthday: please use the format dd/mm/yyyy")
	}
	if birth.After(now) {
		return fmt.Errorf("invalid birthday: date is in the future")
	}
	if Age(birth, now) < MinimumAge {
		return fmt.Errorf("you must be at least %d years old to register", MinimumAge)
	}
	return nil
}
