// Package client is a typed Go client for the attendance API plus a state
// container that tracks each query's loading and error state separately.
package client

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

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	var out user.UserResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out)
	return out, err
}

// Login stores the returned access token for later calls.
func (c *Client) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var out auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return auth.LoginResponse{}, err
	}
	c.SetToken(out.AccessToken)
	return out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) CheckIn(ctx context.Context, reason string) (attendance.RecordResponse, error) {
	var out attendance.RecordResponse
	err := c.do(ctx, http.MethodPost, "/api/attendance/checkin", attendance.CheckInRequest{Reason: reason}, &out)
	return out, err
}

func (c *Client) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	var out attendance.RecordResponse
	err := c.do(ctx, http.MethodPost, "/api/attendance/checkout", nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, userID string) ([]attendance.RecordResponse, error) {
	var out []attendance.RecordResponse
	err := c.do(ctx, http.MethodGet, "/api/attendance/my-history/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) Summary(ctx context.Context, userID string) (report.SummaryResponse, error) {
	var out report.SummaryResponse
	err := c.do(ctx, http.MethodGet, "/api/attendance/my-summary/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) Today(ctx context.Context, userID string) (attendance.TodayResponse, error) {
	var out attendance.TodayResponse
	err := c.do(ctx, http.MethodGet, "/api/attendance/today/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) Ledger(ctx context.Context, filter report.LedgerFilter) ([]attendance.RecordResponse, error) {
	q := url.Values{}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.StartDate != "" {
		q.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("end_date", filter.EndDate)
	}
	path := "/api/attendance/all"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []attendance.RecordResponse
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ManagerDashboard(ctx context.Context) (dashboard.ManagerSnapshot, error) {
	var out dashboard.ManagerSnapshot
	err := c.do(ctx, http.MethodGet, "/api/dashboard/manager", nil, &out)
	return out, err
}

func (c *Client) EmployeeDashboard(ctx context.Context, userID string) (dashboard.EmployeeDashboard, error) {
	var out dashboard.EmployeeDashboard
	err := c.do(ctx, http.MethodGet, "/api/dashboard/employee/"+url.PathEscape(userID), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
