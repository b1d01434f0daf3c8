package account

import "regexp"

// minNewPasswordLength is the client/server agreed minimum for a new
// password. The current password is never measured — only the server can
// prove it.
const minNewPasswordLength = 6

// emailPattern is the exact address grammar the client and server agree on:
// alphanumeric runs optionally joined by single '.' or '-' separators on
// both sides of '@', with a 2–3 letter final segment. Deliberately narrower
// than RFC 5322; the backend enforces the same grammar.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9]+([.-][A-Za-z0-9]+)*@[A-Za-z0-9]+([.-][A-Za-z0-9]+)*\.[A-Za-z]{2,3}$`)

// ValidatePasswordChange checks a new password and its confirmation before
// any network call is attempted. Length is checked before the match and only
// the first failing rule is reported. Returns nil or a *ValidationError.
func ValidatePasswordChange(newPassword, confirmPassword string) error {
	if len(newPassword) < minNewPasswordLength {
		return &ValidationError{Reason: ReasonPasswordTooShort}
	}
	if newPassword != confirmPassword {
		return &ValidationError{Reason: ReasonPasswordMismatch}
	}
	return nil
}

// ValidateEmailChange checks the new address against the narrow grammar.
// Returns nil or a *ValidationError.
func ValidateEmailChange(newEmail string) error {
	if !emailPattern.MatchString(newEmail) {
		return &ValidationError{Reason: ReasonEmailInvalidFormat}
	}
	return nil
}
