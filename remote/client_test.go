package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	account "github.com/AnatolNica/heronexus-account"
	"github.com/AnatolNica/heronexus-account/credstore"
)

type capturedRequest struct {
	method string
	path   string
	auth   string
	body   map[string]string
}

func captureServer(t *testing.T, status int, respBody string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUpdatePasswordRequestShape(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `{}`, &got)
	client := NewClient(srv.URL, nil, nil)

	err := client.UpdatePassword(context.Background(), "tok1", "oldpass", "newpass")
	if err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if got.method != http.MethodPut || got.path != "/users/password" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if got.auth != "Bearer tok1" {
		t.Fatalf("unexpected auth header %q", got.auth)
	}
	want := map[string]string{"currentPassword": "oldpass", "newPassword": "newpass"}
	if !reflect.DeepEqual(got.body, want) {
		t.Fatalf("unexpected body %v", got.body)
	}
}

func TestUpdatePasswordRejection(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusUnauthorized, `{"message":"Wrong current password"}`, &got)
	client := NewClient(srv.URL, nil, nil)

	err := client.UpdatePassword(context.Background(), "tok1", "oldpass", "newpass")
	if !errors.Is(err, account.ErrRemoteRejected) {
		t.Fatalf("expected remote rejection, got %v", err)
	}
	var remoteErr *account.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *account.RemoteError, got %T", err)
	}
	if remoteErr.Status != http.StatusUnauthorized || remoteErr.Message != "Wrong current password" {
		t.Fatalf("unexpected remote error %+v", remoteErr)
	}
}

func TestUpdateEmailDecodesTokenAndAddress(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `{"email":"new@x.com","token":"tok2"}`, &got)
	client := NewClient(srv.URL, nil, nil)

	result, err := client.UpdateEmail(context.Background(), "tok1", "new@x.com", "pass")
	if err != nil {
		t.Fatalf("UpdateEmail failed: %v", err)
	}
	if got.method != http.MethodPut || got.path != "/users/email" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	want := map[string]string{"newEmail": "new@x.com", "currentPassword": "pass"}
	if !reflect.DeepEqual(got.body, want) {
		t.Fatalf("unexpected body %v", got.body)
	}
	if result.Email != "new@x.com" || result.Token != "tok2" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestUpdateEmailWithoutReissuedToken(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `{"email":"new@x.com"}`, &got)
	client := NewClient(srv.URL, nil, nil)

	result, err := client.UpdateEmail(context.Background(), "tok1", "new@x.com", "pass")
	if err != nil {
		t.Fatalf("UpdateEmail failed: %v", err)
	}
	if !result.Token.Empty() {
		t.Fatalf("expected empty token, got %q", result.Token)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `[3,7,42]`, &got)
	client := NewClient(srv.URL, nil, nil)

	ids, err := client.Favorites(context.Background(), "tok1")
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if got.method != http.MethodGet || got.path != "/favorites" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if !reflect.DeepEqual(ids, []int64{3, 7, 42}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestToggleFavoritePathAndDecode(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `{"favorites":[3,42]}`, &got)
	client := NewClient(srv.URL, nil, nil)

	ids, err := client.ToggleFavorite(context.Background(), "tok1", 42)
	if err != nil {
		t.Fatalf("ToggleFavorite failed: %v", err)
	}
	if got.method != http.MethodPost || got.path != "/favorites/42/toggle" {
		t.Fatalf("unexpected request %s %s", got.method, got.path)
	}
	if !reflect.DeepEqual(ids, []int64{3, 42}) {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, nil, nil)

	err := client.UpdatePassword(context.Background(), "tok1", "a", "b")
	if !errors.Is(err, account.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestEmptyCredentialNeverSent(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, nil, nil)

	err := client.UpdatePassword(context.Background(), "", "a", "b")
	if !errors.Is(err, credstore.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
	if called {
		t.Fatal("request must not reach the server without a credential")
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	var got capturedRequest
	srv := captureServer(t, http.StatusOK, `not-json`, &got)
	client := NewClient(srv.URL, nil, nil)

	_, err := client.UpdateEmail(context.Background(), "tok1", "new@x.com", "pass")
	if !errors.Is(err, account.ErrTransport) {
		t.Fatalf("expected transport error for malformed body, got %v", err)
	}
}
