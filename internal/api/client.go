// Package api is the typed HTTP client for the CareerCompass backend.
// Every real operation (search, persistence, aggregation, auth) happens on
// the server; this client only shapes requests and decodes responses.
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

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

const (
	defaultBaseURL   = "http://localhost:8080/api"
	defaultRateRPS   = 5.0
	defaultRateBurst = 10
	defaultTimeout   = 30 * time.Second
)

// Error is a failed API call. Message carries the server-provided message
// when the error body was decodable, and is empty otherwise.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// Client calls the CareerCompass backend. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates an API client from cfg, filling in defaults for any
// zero field.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	rps := cfg.RateRPS
	if rps <= 0 {
		rps = defaultRateRPS
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		log:        log,
	}
}

// SetToken installs the bearer token sent with subsequent requests.
// An empty token clears authentication.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token, if any.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Authenticated reports whether a bearer token is set.
func (c *Client) Authenticated() bool {
	return c.Token() != ""
}

// ListJobs fetches one page of postings for the given wire query.
func (c *Client) ListJobs(ctx context.Context, wire url.Values) (models.Page, error) {
	var page models.Page
	if err := c.getJSON(ctx, "/jobs", wire, &page); err != nil {
		return models.Page{}, err
	}
	return page, nil
}

// TriggerSearch asks the server to aggregate fresh postings for keyword.
// Admin-only; the server is the sole authority on authorization.
func (c *Client) TriggerSearch(ctx context.Context, keyword string) (string, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	body, err := c.doRaw(ctx, http.MethodGet, "/jobs/update", q, nil)
	if err != nil {
		return "", err
	}
	// the endpoint answers with either a plain string or a {message} body
	var msg MessageResponse
	if json.Unmarshal(body, &msg) == nil && msg.Message != "" {
		return msg.Message, nil
	}
	var s string
	if json.Unmarshal(body, &s) == nil && s != "" {
		return s, nil
	}
	return strings.TrimSpace(string(body)), nil
}

// ToggleFavorite adds or removes the posting from the user's favorites.
// The response shape disambiguates which happened.
func (c *Client) ToggleFavorite(ctx context.Context, jobID string) (ToggleResult, error) {
	path := fmt.Sprintf("/favorites/%s/toggle", url.PathEscape(jobID))
	body, err := c.doRaw(ctx, http.MethodPost, path, nil, nil)
	if err != nil {
		return ToggleResult{}, err
	}

	var probe struct {
		Message string `json:"message"`
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return ToggleResult{Removed: true}, nil
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Message != "" {
		return ToggleResult{Removed: true, Message: probe.Message}, nil
	}

	var entry models.FavoriteEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return ToggleResult{}, fmt.Errorf("api: decode toggle response: %w", err)
	}
	return ToggleResult{Entry: entry}, nil
}

// Favorites fetches the user's full favorites collection.
func (c *Client) Favorites(ctx context.Context) ([]models.FavoriteEntry, error) {
	var entries []models.FavoriteEntry
	if err := c.getJSON(ctx, "/favorites", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FavoritesByStatus fetches only the favorites in the given workflow state.
func (c *Client) FavoritesByStatus(ctx context.Context, status models.ApplicationStatus) ([]models.FavoriteEntry, error) {
	var entries []models.FavoriteEntry
	path := fmt.Sprintf("/favorites/status/%s", url.PathEscape(string(status)))
	if err := c.getJSON(ctx, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateFavoriteStatus moves the favorite for jobID to a new workflow state
// and returns the server's updated record.
func (c *Client) UpdateFavoriteStatus(ctx context.Context, jobID string, status models.ApplicationStatus) (models.FavoriteEntry, error) {
	q := url.Values{}
	q.Set("status", string(status))
	path := fmt.Sprintf("/favorites/%s/status", url.PathEscape(jobID))
	body, err := c.doRaw(ctx, http.MethodPut, path, q, nil)
	if err != nil {
		return models.FavoriteEntry{}, err
	}
	var entry models.FavoriteEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return models.FavoriteEntry{}, fmt.Errorf("api: decode favorite record: %w", err)
	}
	return entry, nil
}

// Login exchanges credentials for a JWT and user profile.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.postJSON(ctx, "/auth/signin", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (MessageResponse, error) {
	var resp MessageResponse
	if err := c.postJSON(ctx, "/auth/signup", req, &resp); err != nil {
		return MessageResponse{}, err
	}
	return resp, nil
}

// CurrentUser fetches the profile behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/auth/user", nil, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.doRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("api: encode request: %w", err)
	}
	body, err := c.doRaw(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}
	if out != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

// doRaw performs one rate-limited request and returns the response body.
// Non-2xx statuses become *Error with the server message when available.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug().Str("method", method).Str("url", u).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var msg MessageResponse
		if json.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return nil, apiErr
	}

	return data, nil
}
