package account

import (
	"errors"
	"fmt"
)

var (
	// ErrPasswordTooShort is an exported constant or variable used by the account client.
	ErrPasswordTooShort = errors.New("new password too short")
	// ErrPasswordMismatch is an exported constant or variable used by the account client.
	ErrPasswordMismatch = errors.New("password confirmation mismatch")
	// ErrEmailInvalidFormat is an exported constant or variable used by the account client.
	ErrEmailInvalidFormat = errors.New("email format invalid")
	// ErrRemoteRejected is an exported constant or variable used by the account client.
	ErrRemoteRejected = errors.New("credential service rejected the request")
	// ErrTransport is an exported constant or variable used by the account client.
	ErrTransport = errors.New("credential service unreachable")
	// ErrSubmitInFlight is an exported constant or variable used by the account client.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrFormNotEditing is an exported constant or variable used by the account client.
	ErrFormNotEditing = errors.New("form not open for editing")
	// ErrFormUnmounted is an exported constant or variable used by the account client.
	ErrFormUnmounted = errors.New("form instance torn down")
	// ErrClientNotReady is an exported constant or variable used by the account client.
	ErrClientNotReady = errors.New("client not initialized")
)

// ValidationReason identifies which local validation rule rejected a
// credential-change request before any network call was attempted.
type ValidationReason uint8

const (
	// ReasonPasswordTooShort is an exported constant or variable used by the account client.
	ReasonPasswordTooShort ValidationReason = iota
	// ReasonPasswordMismatch is an exported constant or variable used by the account client.
	ReasonPasswordMismatch
	// ReasonEmailInvalidFormat is an exported constant or variable used by the account client.
	ReasonEmailInvalidFormat
)

// String describes the string operation and its observable behavior.
func (r ValidationReason) String() string {
	switch r {
	case ReasonPasswordTooShort:
		return "password_too_short"
	case ReasonPasswordMismatch:
		return "password_mismatch"
	case ReasonEmailInvalidFormat:
		return "email_invalid_format"
	default:
		return "unknown"
	}
}

// ValidationError is a local validation failure. It never reaches the
// network; the controller resolves it entirely within the form's error slot.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason.String()
}

// Unwrap maps the reason to its sentinel so errors.Is works against
// ErrPasswordTooShort, ErrPasswordMismatch, and ErrEmailInvalidFormat.
func (e *ValidationError) Unwrap() error {
	switch e.Reason {
	case ReasonPasswordTooShort:
		return ErrPasswordTooShort
	case ReasonPasswordMismatch:
		return ErrPasswordMismatch
	case ReasonEmailInvalidFormat:
		return ErrEmailInvalidFormat
	default:
		return nil
	}
}

// Message returns the user-facing text attached to the form's error slot.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ReasonPasswordTooShort:
		return "Password must be at least 6 characters"
	case ReasonPasswordMismatch:
		return "Passwords do not match"
	case ReasonEmailInvalidFormat:
		return "Invalid email format"
	default:
		return "Invalid input"
	}
}

// RemoteError is a server-side rejection of an attempted mutation: wrong
// current password, conflict, and so on. Message carries the server-supplied
// human-readable reason when the response body included one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote rejection (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote rejection (status %d)", e.Status)
}

// Is describes the is operation and its observable behavior.
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}

// TransportError means no usable response was received at all. It wraps the
// underlying transport condition for diagnostics.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "transport failure: " + e.Err.Error()
	}
	return "transport failure"
}

// Unwrap describes the unwrap operation and its observable behavior.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is describes the is operation and its observable behavior.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// formErrorText translates any workflow error into the text attached to the
// form's error slot: the server message when present, otherwise the generic
// fallback scoped to the workflow.
func formErrorText(err error, w Workflow) string {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message()
	}
	return w.fallbackMessage()
}
