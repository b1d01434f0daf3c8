package credstore

import (
	"context"
	"errors"
	"sync"
)

// ErrNoCredential is returned by Current when no session credential is held.
var ErrNoCredential = errors.New("no session credential")

// Store is the contract every credential snapshot backend satisfies.
//
// Replace is an atomic swap: once it returns, every subsequent Current call
// observes the new credential. UpdateProfile merges the patch into the
// current profile and returns the merged result.
type Store interface {
	Current(ctx context.Context) (Credential, error)
	Replace(ctx context.Context, cred Credential) error
	Profile(ctx context.Context) (Profile, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error)
	Clear(ctx context.Context) error
}

// Memory is the default in-process backend. A single mutex guards both the
// credential and the profile so a swap is indivisible.
type Memory struct {
	mu      sync.RWMutex
	cred    Credential
	profile Profile
}

// NewMemory returns an empty in-memory store: no credential, zero profile.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory store seeded with a login-issued
// credential and the profile confirmed alongside it.
func NewMemoryWith(cred Credential, profile Profile) *Memory {
	return &Memory{cred: cred, profile: profile}
}

// Current describes the current operation and its observable behavior.
func (m *Memory) Current(ctx context.Context) (Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.cred.Empty() {
		return "", ErrNoCredential
	}
	return m.cred, nil
}

// Replace describes the replace operation and its observable behavior.
func (m *Memory) Replace(ctx context.Context, cred Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = cred
	return nil
}

// Profile describes the profile operation and its observable behavior.
func (m *Memory) Profile(ctx context.Context) (Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.profile, nil
}

// UpdateProfile describes the updateprofile operation and its observable behavior.
func (m *Memory) UpdateProfile(ctx context.Context, patch ProfilePatch) (Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile = applyPatch(m.profile, patch)
	return m.profile, nil
}

// Clear destroys the snapshot. Used by the logout path.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cred = ""
	m.profile = Profile{}
	return nil
}
