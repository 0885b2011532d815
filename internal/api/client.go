// Package api implements the HTTP client for the MyNotes backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// SessionContext holds the bearer token for authenticated requests. It is
// injected into the Client rather than read from a global so login, logout and
// 401 handling share one explicit lifecycle. Commands run on separate
// goroutines, hence the lock.
type SessionContext struct {
	mu    sync.RWMutex
	token string
}

// NewSession creates a session context, optionally seeded with a stored token.
func NewSession(token string) *SessionContext {
	return &SessionContext{token: token}
}

// Set installs a token after a successful login.
func (s *SessionContext) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear drops the token on logout or 401.
func (s *SessionContext) Clear() {
	s.Set("")
}

// Token returns the current token, empty when unauthenticated.
func (s *SessionContext) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a token is present.
func (s *SessionContext) Active() bool {
	return s.Token() != ""
}

// Client talks to the MyNotes backend.
type Client struct {
	base    string
	http    *http.Client
	session *SessionContext
}

// New creates a client for the given base URL. The session context is shared
// with the caller so token changes are visible to in-flight code.
func New(baseURL string, session *SessionContext) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

// Session returns the injected session context.
func (c *Client) Session() *SessionContext {
	return c.session
}

// apiEnvelope is the common failure shape the backend returns.
type apiEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// do performs one request. Non-2xx responses become *APIError; transport
// failures are wrapped and surface as network errors.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env apiEnvelope
		_ = json.Unmarshal(data, &env)
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// Login exchanges credentials for an access token. The token is installed
// into the session context on success.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", &APIError{Status: http.StatusInternalServerError, Message: "no access token in response"}
	}
	c.session.Set(resp.AccessToken)
	return resp.AccessToken, nil
}

// CreateAccount registers a new user. The backend may report failure inside a
// 2xx envelope, which is normalized into an *APIError.
func (c *Client) CreateAccount(ctx context.Context, fullName, email, password string) error {
	var env apiEnvelope
	body := map[string]string{"fullName": fullName, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/create-account", nil, body, &env); err != nil {
		return err
	}
	if env.Error {
		return &APIError{Status: http.StatusBadRequest, Message: env.Message}
	}
	return nil
}

// VerifyEmail redeems an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	q := url.Values{"token": {token}}
	return c.do(ctx, http.MethodGet, "/verify", q, nil, nil)
}

// GetUser fetches the authenticated profile.
func (c *Client) GetUser(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/get-user", nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, &APIError{Status: http.StatusInternalServerError, Message: "no user in response"}
	}
	return resp.User, nil
}

// ListNotes fetches the full note list, server-ordered.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var resp struct {
		Notes []Note `json:"notes"`
	}
	if err := c.do(ctx, http.MethodGet, "/get-all-notes", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// SearchNotes runs a server-side search. Empty queries are rejected by the
// caller before reaching here.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	var resp struct {
		Notes []Note `json:"notes"`
	}
	q := url.Values{"query": {query}}
	if err := c.do(ctx, http.MethodGet, "/search-notes", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// CreateNote persists a new note and returns the server copy.
func (c *Client) CreateNote(ctx context.Context, p NotePayload) (*Note, error) {
	var resp struct {
		Note *Note `json:"note"`
	}
	if err := c.do(ctx, http.MethodPost, "/add-note", nil, p, &resp); err != nil {
		return nil, err
	}
	return resp.Note, nil
}

// EditNote replaces the editable fields of an existing note.
func (c *Client) EditNote(ctx context.Context, id string, p NotePayload) (*Note, error) {
	var resp struct {
		Note *Note `json:"note"`
	}
	if err := c.do(ctx, http.MethodPut, "/edit-note/"+url.PathEscape(id), nil, p, &resp); err != nil {
		return nil, err
	}
	return resp.Note, nil
}

// UpdateNote applies a partial update, e.g. {"isFavorite": true}.
func (c *Client) UpdateNote(ctx context.Context, id string, fields NoteFields) (*Note, error) {
	var resp struct {
		Note *Note `json:"note"`
	}
	if err := c.do(ctx, http.MethodPut, "/update-note/"+url.PathEscape(id), nil, fields, &resp); err != nil {
		return nil, err
	}
	return resp.Note, nil
}

// DeleteNote removes a note by ID.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/delete-note/"+url.PathEscape(id), nil, nil, nil)
}
