package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	account "github.com/AnatolNica/heronexus-account"
	"github.com/AnatolNica/heronexus-account/credstore"
)

// Client talks to the HeroNexus account REST API. It implements
// [account.RemoteCredentialService] and [account.FavoritesService].
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client against the given base URL. A nil httpClient
// gets a 30 second default timeout; a nil logger is replaced with a nop.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

type passwordUpdateBody struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type emailUpdateBody struct {
	NewEmail        string `json:"newEmail"`
	CurrentPassword string `json:"currentPassword"`
}

type emailUpdateResponse struct {
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type favoritesResponse struct {
	Favorites []int64 `json:"favorites"`
}

// UpdatePassword proves the current password and rotates it. The success
// body is ignorable.
func (c *Client) UpdatePassword(ctx context.Context, cred credstore.Credential, currentPassword, newPassword string) error {
	resp, raw, err := c.do(ctx, http.MethodPut, "/users/password", cred, passwordUpdateBody{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
	if err != nil {
		return err
	}
	if !is2xx(resp.StatusCode) {
		return remoteError(resp.StatusCode, raw)
	}
	return nil
}

// UpdateEmail proves the current password and rotates the address. The
// success body carries the confirmed email and, when the change invalidated
// the old session, a reissued credential.
func (c *Client) UpdateEmail(ctx context.Context, cred credstore.Credential, newEmail, currentPassword string) (account.EmailChangeResult, error) {
	resp, raw, err := c.do(ctx, http.MethodPut, "/users/email", cred, emailUpdateBody{
		NewEmail:        newEmail,
		CurrentPassword: currentPassword,
	})
	if err != nil {
		return account.EmailChangeResult{}, err
	}
	if !is2xx(resp.StatusCode) {
		return account.EmailChangeResult{}, remoteError(resp.StatusCode, raw)
	}

	var body emailUpdateResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return account.EmailChangeResult{}, &account.TransportError{Err: fmt.Errorf("decode email response: %w", err)}
	}
	return account.EmailChangeResult{
		Email: body.Email,
		Token: credstore.Credential(body.Token),
	}, nil
}

// Favorites fetches the viewer's favorite set.
func (c *Client) Favorites(ctx context.Context, cred credstore.Credential) ([]int64, error) {
	resp, raw, err := c.do(ctx, http.MethodGet, "/favorites", cred, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, remoteError(resp.StatusCode, raw)
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, &account.TransportError{Err: fmt.Errorf("decode favorites: %w", err)}
	}
	return ids, nil
}

// ToggleFavorite flips one id and returns the updated set. The id travels
// in the path; the request has no body.
func (c *Client) ToggleFavorite(ctx context.Context, cred credstore.Credential, id int64) ([]int64, error) {
	path := "/favorites/" + strconv.FormatInt(id, 10) + "/toggle"
	resp, raw, err := c.do(ctx, http.MethodPost, path, cred, nil)
	if err != nil {
		return nil, err
	}
	if !is2xx(resp.StatusCode) {
		return nil, remoteError(resp.StatusCode, raw)
	}

	var body favoritesResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &account.TransportError{Err: fmt.Errorf("decode toggle response: %w", err)}
	}
	return body.Favorites, nil
}

// do issues one authenticated request and reads the full body. The caller
// short-circuits unauthenticated attempts; this is the second line of
// defense, an empty credential never leaves the process.
func (c *Client) do(ctx context.Context, method, path string, cred credstore.Credential, body any) (*http.Response, []byte, error) {
	if cred.Empty() {
		return nil, nil, credstore.ErrNoCredential
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, &account.TransportError{Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, &account.TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+string(cred))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &account.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &account.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if !is2xx(resp.StatusCode) {
		c.logger.Debug("account api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
	}
	return resp, raw, nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func remoteError(status int, raw []byte) error {
	var body errorResponse
	_ = json.Unmarshal(raw, &body)
	return &account.RemoteError{Status: status, Message: body.Message}
}
