package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/AbhishekS200607/quickaid/internal/model"
)

var (
	ErrMissingField       = errors.New("missing required fields")
	ErrInvalidPhoneFormat = errors.New("invalid phone number format")
)

// Field limits, counted in characters after trimming
const (
	MaxNameLength        = 100
	MaxPhoneLength       = 20
	MaxCityLength        = 50
	MaxDescriptionLength = 500
)

// phonePattern accepts an optional "+", up to four digit groups of 1-4 digits
// (each optionally parenthesized and followed by a space, dot or hyphen) and a
// final group of 1-9 digits. It is a shape check, not number validation.
var phonePattern = regexp.MustCompile(`^\+?(?:\(?[0-9]{1,4}\)?[- .]?){1,4}[0-9]{1,9}$`)

// ValidPhone reports whether phone has the loose international shape
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// SanitizeSubmission turns a public submission into a contact ready for
// insertion. The result is always unverified with zero upvotes.
func SanitizeSubmission(req model.SubmitContactRequest) (*model.Contact, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	category := strings.TrimSpace(req.Category)
	city := strings.TrimSpace(req.City)

	if name == "" || phone == "" || category == "" || city == "" {
		return nil, ErrMissingField
	}
	if !ValidPhone(phone) {
		return nil, ErrInvalidPhoneFormat
	}

	contact := &model.Contact{
		Name:       truncate(name, MaxNameLength),
		Phone:      truncate(phone, MaxPhoneLength),
		Category:   category,
		City:       truncate(city, MaxCityLength),
		IsVerified: false,
		Upvotes:    0,
	}
	if req.Description != nil {
		if desc := strings.TrimSpace(*req.Description); desc != "" {
			desc = truncate(desc, MaxDescriptionLength)
			contact.Description = &desc
		}
	}
	return contact, nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
