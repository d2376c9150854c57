// Package client is a Go client for the budget manager HTTP API.
//
// Authentication state is carried explicitly: Register and Login return a
// Session, and every authenticated call takes one.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-budget-manager/pkg/aggregate"
)

const budgetsPath = "/budgets"

// ErrNoSession is returned by authenticated calls made without a token.
var ErrNoSession = errors.New("not logged in")

// Session holds the token of a logged in user.
type Session struct {
	Token    string
	Username string
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("budget manager API: %d %s", e.StatusCode, e.Message)
}

// Budget is a budget entry as returned by the server.
type Budget struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetInput is the body of create and update calls.
type BudgetInput struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

// Client calls the budget manager API at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Opt configures a Client.
type Opt func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Opt {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Opt) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, username, password, email string) (*Session, error) {
	body := map[string]string{"username": username, "password": password, "email": email}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, Username: username}, nil
}

// Login authenticates and returns a session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, Username: username}, nil
}

// VerifyUser checks that the session's user still exists.
func (c *Client) VerifyUser(ctx context.Context, s *Session) error {
	return c.doAuth(ctx, http.MethodGet, "/verify-user", s, nil, nil)
}

// RecoverPassword asks the server to mail a reset token to email.
func (c *Client) RecoverPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/recover-password", nil, map[string]string{"email": email}, nil)
}

// ResetPassword replaces the password of the user the reset token was issued for.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "password": newPassword}
	return c.do(ctx, http.MethodPost, "/reset-password", nil, body, nil)
}

// ListBudgets returns the session user's budgets.
func (c *Client) ListBudgets(ctx context.Context, s *Session) ([]Budget, error) {
	var budgets []Budget
	if err := c.doAuth(ctx, http.MethodGet, "/", s, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// CreateBudget stores a new budget and returns it.
func (c *Client) CreateBudget(ctx context.Context, s *Session, in BudgetInput) (*Budget, error) {
	var resp struct {
		Message string `json:"message"`
		Budget  Budget `json:"budget"`
	}
	if err := c.doAuth(ctx, http.MethodPost, "/add", s, in, &resp); err != nil {
		return nil, err
	}
	return &resp.Budget, nil
}

// UpdateBudget replaces the fields of budget id.
func (c *Client) UpdateBudget(ctx context.Context, s *Session, id uuid.UUID, in BudgetInput) (*Budget, error) {
	var budget Budget
	if err := c.doAuth(ctx, http.MethodPut, "/"+id.String(), s, in, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// DeleteBudget removes budget id.
func (c *Client) DeleteBudget(ctx context.Context, s *Session, id uuid.UUID) error {
	return c.doAuth(ctx, http.MethodDelete, "/"+id.String(), s, nil, nil)
}

// SetLimit stores the spending limit and returns it as the server stored it,
// rounded to cents. Non-positive limits are rejected locally.
func (c *Client) SetLimit(ctx context.Context, s *Session, limit float64) (float64, error) {
	if err := aggregate.ValidateLimit(limit); err != nil {
		return 0, err
	}
	var resp struct {
		Limit float64 `json:"limit"`
	}
	if err := c.doAuth(ctx, http.MethodPost, "/setLimit", s, map[string]float64{"limit": limit}, &resp); err != nil {
		return 0, err
	}
	return resp.Limit, nil
}

// SetLimitInput parses user input and stores it as the spending limit.
// Input that is not a positive number never reaches the server.
func (c *Client) SetLimitInput(ctx context.Context, s *Session, input string) (float64, error) {
	limit, err := aggregate.ParseLimitInput(input)
	if err != nil {
		return 0, err
	}
	return c.SetLimit(ctx, s, limit)
}

// GetLimit returns the spending limit, nil when it was never set.
func (c *Client) GetLimit(ctx context.Context, s *Session) (*float64, error) {
	var resp struct {
		Limit *float64 `json:"limit"`
	}
	if err := c.doAuth(ctx, http.MethodGet, "/getLimit", s, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Limit, nil
}

// Dashboard loads budgets and the limit and aggregates them locally.
func (c *Client) Dashboard(ctx context.Context, s *Session) (*aggregate.Summary, error) {
	budgets, err := c.ListBudgets(ctx, s)
	if err != nil {
		return nil, err
	}
	limit, err := c.GetLimit(ctx, s)
	if err != nil {
		return nil, err
	}

	entries := make([]aggregate.Entry, 0, len(budgets))
	for _, b := range budgets {
		entries = append(entries, aggregate.Entry{Type: b.Type, Amount: b.Amount})
	}
	summary := aggregate.Summarize(entries, limit)
	return &summary, nil
}

// doAuth is do for routes behind the access gate.
func (c *Client) doAuth(ctx context.Context, method, path string, s *Session, in, out any) error {
	if s == nil || s.Token == "" {
		return ErrNoSession
	}
	return c.do(ctx, method, path, s, in, out)
}

// do sends a JSON request to /budgets+path and decodes a 2xx answer into out.
// A nil session means the route is public.
func (c *Client) do(ctx context.Context, method, path string, s *Session, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+budgetsPath+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
