package account

import (
	"context"
	"sync"
	"testing"

	"github.com/AnatolNica/heronexus-account/credstore"
)

type mockRemote struct {
	mu sync.Mutex

	passwordErr error
	emailErr    error
	emailResult EmailChangeResult

	// gate, when set, blocks remote calls until closed.
	gate chan struct{}

	updatePasswordCalls int
	updateEmailCalls    int
	creds               []credstore.Credential
	lastCurrent         string
	lastNew             string
	lastEmail           string
}

func (m *mockRemote) UpdatePassword(ctx context.Context, cred credstore.Credential, currentPassword, newPassword string) error {
	m.mu.Lock()
	m.updatePasswordCalls++
	m.creds = append(m.creds, cred)
	m.lastCurrent = currentPassword
	m.lastNew = newPassword
	gate := m.gate
	err := m.passwordErr
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return err
}

func (m *mockRemote) UpdateEmail(ctx context.Context, cred credstore.Credential, newEmail, currentPassword string) (EmailChangeResult, error) {
	m.mu.Lock()
	m.updateEmailCalls++
	m.creds = append(m.creds, cred)
	m.lastEmail = newEmail
	m.lastCurrent = currentPassword
	gate := m.gate
	result := m.emailResult
	err := m.emailErr
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return result, err
}

func (m *mockRemote) passwordCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updatePasswordCalls
}

func (m *mockRemote) emailCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateEmailCalls
}

func (m *mockRemote) lastCred() credstore.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.creds) == 0 {
		return ""
	}
	return m.creds[len(m.creds)-1]
}

type mockFavorites struct {
	mu sync.Mutex

	fetchIDs  []int64
	fetchErr  error
	toggleIDs []int64
	toggleErr error

	fetchCalls  int
	toggleCalls int
	creds       []credstore.Credential
}

func (m *mockFavorites) Favorites(ctx context.Context, cred credstore.Credential) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	m.creds = append(m.creds, cred)
	return append([]int64(nil), m.fetchIDs...), m.fetchErr
}

func (m *mockFavorites) ToggleFavorite(ctx context.Context, cred credstore.Credential, id int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggleCalls++
	m.creds = append(m.creds, cred)
	return append([]int64(nil), m.toggleIDs...), m.toggleErr
}

func (m *mockFavorites) lastCred() credstore.Credential {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.creds) == 0 {
		return ""
	}
	return m.creds[len(m.creds)-1]
}

// recordingStore wraps a Memory store and records the order of mutating
// operations so ordering invariants can be asserted.
type recordingStore struct {
	inner *credstore.Memory

	mu  sync.Mutex
	ops []string
}

func newRecordingStore(cred credstore.Credential, profile credstore.Profile) *recordingStore {
	return &recordingStore{inner: credstore.NewMemoryWith(cred, profile)}
}

func (s *recordingStore) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
}

func (s *recordingStore) operations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

func (s *recordingStore) Current(ctx context.Context) (credstore.Credential, error) {
	return s.inner.Current(ctx)
}

func (s *recordingStore) Replace(ctx context.Context, cred credstore.Credential) error {
	s.record("replace")
	return s.inner.Replace(ctx, cred)
}

func (s *recordingStore) Profile(ctx context.Context) (credstore.Profile, error) {
	return s.inner.Profile(ctx)
}

func (s *recordingStore) UpdateProfile(ctx context.Context, patch credstore.ProfilePatch) (credstore.Profile, error) {
	s.record("update_profile")
	return s.inner.UpdateProfile(ctx, patch)
}

func (s *recordingStore) Clear(ctx context.Context) error {
	s.record("clear")
	return s.inner.Clear(ctx)
}

func newTestClient(t *testing.T, remote RemoteCredentialService, store credstore.Store, sink Notifier) *Client {
	t.Helper()

	builder := New().WithRemote(remote)
	if store != nil {
		builder = builder.WithCredentialStore(store)
	}
	if sink != nil {
		builder = builder.WithNotifier(sink)
	}

	client, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}

func seededStore() *credstore.Memory {
	return credstore.NewMemoryWith("tok1", credstore.Profile{Email: "old@x.com"})
}
