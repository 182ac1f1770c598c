package console

import (
	"regexp"
	"strconv"
	"strings"

	"library-management/library"
)

// Input validators for raw console strings, applied before any typed value
// or service call is constructed.

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._@-]+$`)
	nameRe     = regexp.MustCompile(`^[A-Za-z\-\s]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	isbnRe     = regexp.MustCompile(`^[0-9Xx\-]{10,17}$`)
	pincodeRe  = regexp.MustCompile(`^[A-Za-z0-9\- ]{3,10}$`)

	passwordDigitRe   = regexp.MustCompile(`[0-9]`)
	passwordLowerRe   = regexp.MustCompile(`[a-z]`)
	passwordUpperRe   = regexp.MustCompile(`[A-Z]`)
	passwordSpecialRe = regexp.MustCompile(`[@#$%^&+=!]`)
)

// ValidUsername accepts 3-20 characters of letters, digits, and . _ @ -.
func ValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 20 {
		return false
	}
	return usernameRe.MatchString(username)
}

// ValidPassword requires at least 8 characters with a digit, a lowercase and
// an uppercase letter, and a special character.
func ValidPassword(password string) bool {
	password = strings.TrimSpace(password)
	if len(password) < library.MinPasswordLength {
		return false
	}
	return passwordDigitRe.MatchString(password) &&
		passwordLowerRe.MatchString(password) &&
		passwordUpperRe.MatchString(password) &&
		passwordSpecialRe.MatchString(password)
}

// ValidName accepts alphabetic names of at least two characters, allowing
// hyphens and spaces.
func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	return len(name) >= 2 && nameRe.MatchString(name)
}

// ValidDateOfBirth parses an ISO date and bounds it to a plausible lifetime:
// at least 5 and at most 120 years ago.
func ValidDateOfBirth(raw string) bool {
	dob, err := library.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	today := library.Today()
	earliest := library.DateOf(today.Time().AddDate(-120, 0, 0))
	latest := library.DateOf(today.Time().AddDate(-5, 0, 0))
	return !dob.After(latest) && !dob.Before(earliest)
}

// ValidGender accepts male or female, case-insensitively.
func ValidGender(raw string) bool {
	switch library.Gender(strings.ToLower(strings.TrimSpace(raw))) {
	case library.GenderMale, library.GenderFemale:
		return true
	}
	return false
}

// ValidEmail checks the basic local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// ValidPhoneNumber accepts 10-15 digits with an optional leading +.
func ValidPhoneNumber(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// ValidISBN accepts 10 or 13 digit ISBNs with optional hyphens and a
// trailing X check digit.
func ValidISBN(isbn string) bool {
	isbn = strings.TrimSpace(isbn)
	digits := strings.Map(func(r rune) rune {
		if r == '-' {
			return -1
		}
		return r
	}, isbn)
	if len(digits) != 10 && len(digits) != 13 {
		return false
	}
	return isbnRe.MatchString(isbn)
}

// ValidCopyCount accepts a positive integer copy count.
func ValidCopyCount(raw string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	return err == nil && n > 0
}

// ValidPincode accepts short alphanumeric postal codes.
func ValidPincode(pincode string) bool {
	return pincodeRe.MatchString(strings.TrimSpace(pincode))
}

// ValidPlace accepts non-empty street/city/state/country fields.
func ValidPlace(place string) bool {
	return strings.TrimSpace(place) != ""
}

// ValidDate parses an ISO date that is not in the future.
func ValidDate(raw string) bool {
	d, err := library.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return !d.After(library.Today())
}

// ParseGender converts validated input into the typed enum.
func ParseGender(raw string) library.Gender {
	return library.Gender(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseDateOfBirth converts validated input into a Date.
func ParseDateOfBirth(raw string) library.Date {
	d, _ := library.ParseDate(strings.TrimSpace(raw))
	return d
}
