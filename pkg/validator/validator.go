// Package validator checks the primitive arguments crossing the simulator
// boundary against the same field rules the real backend enforces.
package validator

import (
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Field names reported back to the caller, matching the backend's parameter
// naming so contract tests line up.
const (
	FieldUsername        = "USERNAME"
	FieldEmail           = "EMAIL"
	FieldPassword        = "PASSWORD"
	FieldUsernameOrEmail = "USERNAME_OR_EMAIL"
	FieldIP              = "IP"
	FieldImageURL        = "IMAGE_URL"
	FieldResetCode       = "RESET_ID"
	FieldDateOfBirth     = "DATE_OF_BIRTH"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

// Fields returns the invalid field names in a stable order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (v ValidationErrors) String() string {
	return fmt.Sprintf("Invalid fields: %s", strings.Join(v.Fields(), ", "))
}

var (
	usernameRegex = regexp.MustCompile(`^\w{3,500}$`)
	emailRegex    = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	imageURLRegex = regexp.MustCompile(`\.(jpg|jpeg|png|gif)$`)
)

func ValidateRegister(username, email, password, ip string) ValidationErrors {
	errs := make(ValidationErrors)

	if !usernameRegex.MatchString(username) {
		errs.Add(FieldUsername, "Username must be 3-500 letters, numbers or underscores")
	}

	validateEmail(email, FieldEmail, errs)
	validatePassword(password, errs)
	validateIP(ip, errs)

	return errs
}

func ValidateLogin(usernameOrEmail, password, ip string) ValidationErrors {
	errs := make(ValidationErrors)

	if !usernameRegex.MatchString(usernameOrEmail) && !emailRegex.MatchString(usernameOrEmail) {
		errs.Add(FieldUsernameOrEmail, "Must be a username or an email address")
	}

	validatePassword(password, errs)
	validateIP(ip, errs)

	return errs
}

func ValidateUsernameOrEmail(usernameOrEmail string) ValidationErrors {
	errs := make(ValidationErrors)
	if !usernameRegex.MatchString(usernameOrEmail) && !emailRegex.MatchString(usernameOrEmail) {
		errs.Add(FieldUsernameOrEmail, "Must be a username or an email address")
	}
	return errs
}

func ValidatePassword(password string) ValidationErrors {
	errs := make(ValidationErrors)
	validatePassword(password, errs)
	return errs
}

func ValidateImageURL(imageURL string) ValidationErrors {
	errs := make(ValidationErrors)
	if !imageURLRegex.MatchString(strings.ToLower(imageURL)) {
		errs.Add(FieldImageURL, "Image URL must end in .jpg, .jpeg, .png or .gif")
	}
	return errs
}

func ValidateIP(ip string) ValidationErrors {
	errs := make(ValidationErrors)
	validateIP(ip, errs)
	return errs
}

func validateEmail(email, field string, errs ValidationErrors) {
	if !emailRegex.MatchString(email) {
		errs.Add(field, "Invalid email address")
	}
}

func validateIP(ip string, errs ValidationErrors) {
	if net.ParseIP(ip) == nil {
		errs.Add(FieldIP, "Must be a valid IPv4 or IPv6 address")
	}
}

// validatePassword enforces the backend's complexity rule: at least 8
// characters with one uppercase letter, one lowercase letter, one digit and
// one special character, no whitespace.
func validatePassword(password string, errs ValidationErrors) {
	if len(password) < 8 {
		errs.Add(FieldPassword, "Password must be at least 8 characters")
		return
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case unicode.IsSpace(ch):
			errs.Add(FieldPassword, "Password must not contain whitespace")
			return
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case strings.ContainsRune("@#$%^&+=_", ch):
			hasSpecial = true
		}
	}

	missing := []string{}
	if !hasUpper {
		missing = append(missing, "one uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "one lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "one number")
	}
	if !hasSpecial {
		missing = append(missing, "one special character")
	}

	if len(missing) > 0 {
		errs.Add(FieldPassword, fmt.Sprintf("Password must contain at least %s", strings.Join(missing, ", ")))
	}
}
