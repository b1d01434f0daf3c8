package account

import (
	"context"
	"encoding/json"

	"github.com/AnatolNica/heronexus-account/credstore"
)

// Workflow identifies one credential-change workflow kind. The password and
// email workflows are independent instances and may be in flight
// concurrently with each other; each individually serializes its own
// resubmissions.
type Workflow uint8

const (
	// WorkflowPasswordChange is an exported constant or variable used by the account client.
	WorkflowPasswordChange Workflow = iota
	// WorkflowEmailChange is an exported constant or variable used by the account client.
	WorkflowEmailChange
)

// String describes the string operation and its observable behavior.
func (w Workflow) String() string {
	switch w {
	case WorkflowEmailChange:
		return "email_change"
	default:
		return "password_change"
	}
}

// MarshalJSON describes the marshaljson operation and its observable behavior.
func (w Workflow) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w Workflow) fallbackMessage() string {
	switch w {
	case WorkflowEmailChange:
		return "Error changing email"
	default:
		return "Error changing password"
	}
}

// EmailChangeResult is the success payload of an email mutation. Token is
// empty when the change did not invalidate the old session credential.
type EmailChangeResult struct {
	Email string
	Token credstore.Credential
}

// RemoteCredentialService is the backend endpoint set that proves the
// current password and atomically performs the requested mutation,
// optionally reissuing a session credential when the change invalidates the
// old one. Implementations translate every failure into the package error
// taxonomy: *RemoteError for a declined mutation, *TransportError when no
// usable response was received.
type RemoteCredentialService interface {
	UpdatePassword(ctx context.Context, cred credstore.Credential, currentPassword, newPassword string) error
	UpdateEmail(ctx context.Context, cred credstore.Credential, newEmail, currentPassword string) (EmailChangeResult, error)
}

// FavoritesService is the thin favorites boundary: fetch the viewer's
// favorite set, or toggle one id and receive the updated set.
type FavoritesService interface {
	Favorites(ctx context.Context, cred credstore.Credential) ([]int64, error)
	ToggleFavorite(ctx context.Context, cred credstore.Credential, id int64) ([]int64, error)
}

// SessionInfo is a diagnostic view over the stored credential.
type SessionInfo struct {
	Authenticated bool
	// Expiring is true when the credential is JWT-shaped and carries an
	// expiry claim; ExpiresAt is only meaningful in that case.
	Expiring  bool
	ExpiresAt int64
}
