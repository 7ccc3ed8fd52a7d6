package auth

import (
	"regexp"
	"strings"

	"github.com/pawhaven/adoption-api/internal/application/dto"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

var (
	hasDigit  = regexp.MustCompile(`\d`)
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	allDigits = regexp.MustCompile(`^\d+$`)
)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// isValidPhone accepts +ccnnnnnn: a leading plus followed by digits only.
func isValidPhone(phone string) bool {
	return len(phone) > 1 && phone[0] == '+' && allDigits.MatchString(phone[1:])
}

// isValidPassword requires at least 6 characters with a letter and a digit.
func isValidPassword(password string) bool {
	return len(password) >= 6 && hasDigit.MatchString(password) && hasLetter.MatchString(password)
}

const (
	msgInvalidEmail    = "email is invalid"
	msgInvalidPhone    = "phone num is invalid - must be in format +ccnnnnnn where cc is country code and n are remaining digits"
	msgInvalidPassword = "password must include a number, a letter and be at least 6 chars long eg. passw0rd"
	msgPasswordsDiffer = "passwords do not match"
	msgEmailExists     = "email already exists"
)

// validateSignup checks the whole form and reports every violated field.
func validateSignup(in dto.SignupRequest) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if strings.TrimSpace(in.FirstName) == "" {
		errs["firstName"] = "first name is empty"
	}
	if strings.TrimSpace(in.LastName) == "" {
		errs["lastName"] = "last name is empty"
	}
	if !isValidEmail(in.Email) {
		errs["email"] = msgInvalidEmail
	}
	if !isValidPhone(in.Phone) {
		errs["phone"] = msgInvalidPhone
	}
	if !isValidPassword(in.Password) {
		errs["password"] = msgInvalidPassword
	}
	if in.Password != in.PasswordConfirm {
		errs["passwordConfirm"] = msgPasswordsDiffer
	}
	return errs
}

// validateNewPassword checks a password change form.
func validateNewPassword(in dto.ChangePasswordRequest) dto.FieldErrors {
	errs := dto.FieldErrors{}
	if !isValidPassword(in.NewPassword) {
		errs["newPassword"] = msgInvalidPassword
	}
	if in.NewPassword != in.NewPasswordConfirm {
		errs["newPasswordConfirm"] = msgPasswordsDiffer
	}
	return errs
}
