package account

import (
	"context"
	"testing"

	"github.com/AnatolNica/heronexus-account/credstore"
)

func TestBuildRequiresRemote(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected Build to fail without a remote service")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().WithRemote(&mockRemote{})
	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuildDefaults(t *testing.T) {
	client, err := New().WithRemote(&mockRemote{}).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)

	// Default store is an empty in-memory snapshot.
	session, err := client.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if session.Authenticated {
		t.Fatal("expected unauthenticated default store")
	}

	// Metrics are on by default.
	if len(client.MetricsSnapshot().Counters) == 0 {
		t.Fatal("expected metrics enabled by default")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Notify.BufferSize = -1

	_, err := New().WithConfig(cfg).WithRemote(&mockRemote{}).Build()
	if err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestSessionReportsCredential(t *testing.T) {
	store := credstore.NewMemoryWith("opaque-token", credstore.Profile{})
	client := newTestClient(t, &mockRemote{}, store, nil)

	session, err := client.Session(context.Background())
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if !session.Authenticated {
		t.Fatal("expected authenticated session")
	}
	if session.Expiring {
		t.Fatal("expected opaque token to report no expiry")
	}
}

func TestLogoutClearsSnapshot(t *testing.T) {
	store := seededStore()
	client := newTestClient(t, &mockRemote{}, store, nil)

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := store.Current(context.Background()); err != credstore.ErrNoCredential {
		t.Fatalf("expected cleared credential, got %v", err)
	}
}
