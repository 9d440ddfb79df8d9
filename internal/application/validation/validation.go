// Package validation holds the input rules applied before any use case runs.
// Every function returns all violations it finds; an empty result means valid.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Limits shared with the HTTP layer and the database schema.
const (
	MaxEmailLength       = 254
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
	MinNameLength        = 2
	MaxNameLength        = 50
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
)

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[\p{L}\s'-]+$`)
)

func Email(email string) []string {
	if strings.TrimSpace(email) == "" {
		return []string{"Email is required"}
	}
	var errs []string
	if !emailRegex.MatchString(email) {
		errs = append(errs, "Invalid email format")
	}
	if len(email) > MaxEmailLength {
		errs = append(errs, "Email is too long")
	}
	return errs
}

func Password(password string) []string {
	var errs []string
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if n > MaxPasswordLength {
		errs = append(errs, "Password is too long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lower {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digit {
		errs = append(errs, "Password must contain at least one number")
	}
	return errs
}

func Name(name string) []string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return []string{"Name is required"}
	}
	var errs []string
	n := utf8.RuneCountInString(trimmed)
	if n < MinNameLength {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if n > MaxNameLength {
		errs = append(errs, "Name is too long")
	}
	if !nameRegex.MatchString(trimmed) {
		errs = append(errs, "Name contains invalid characters")
	}
	return errs
}

func Title(title string) []string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return []string{"Title is required"}
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return []string{"Title is too long"}
	}
	return nil
}

// Description accepts nil as "no description".
func Description(description *string) []string {
	if description == nil {
		return nil
	}
	if utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return []string{"Description is too long"}
	}
	return nil
}

// Registration combines the email, password and name rules.
func Registration(email, password, name string) []string {
	var errs []string
	errs = append(errs, Email(email)...)
	errs = append(errs, Password(password)...)
	errs = append(errs, Name(name)...)
	return errs
}

// Todo combines the title and description rules.
func Todo(title string, description *string) []string {
	var errs []string
	errs = append(errs, Title(title)...)
	errs = append(errs, Description(description)...)
	return errs
}
