// Package client is the REST consumer for the Anchor API, used by the
// caregiver workflow packages and by companion tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"anchor/internal/model"
	"anchor/internal/schema"
)

var (
	// ErrNotFound maps a 404: an expected state for today-fetches, not a
	// failure.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized maps a 401 (missing or expired token).
	ErrUnauthorized = errors.New("unauthorized")
)

type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// SetToken installs the bearer token used on every subsequent call. The
// token is held here explicitly, not in ambient storage.
func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.doJSON(ctx, "POST", "/api/auth/login", model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, email, password, name string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	err := c.doJSON(ctx, "POST", "/api/auth/signup", model.SignupRequest{Email: email, Password: password, Name: name}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) CaregiverLogin(ctx context.Context, username, pin string) (*model.CaregiverLoginResponse, error) {
	var resp model.CaregiverLoginResponse
	err := c.doJSON(ctx, "POST", "/api/auth/caregiver/login", model.CaregiverLoginRequest{Username: username, PIN: pin}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Logout() { c.token = "" }

func (c *Client) CreateCareLog(ctx context.Context, recipientID, date string) (*model.CareLog, error) {
	var l model.CareLog
	req := model.CreateCareLogRequest{CareRecipientID: recipientID, LogDate: date}
	if err := c.doJSON(ctx, "POST", "/api/care-logs", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) TodayForCaregiver(ctx context.Context) (*model.CareLog, error) {
	var l model.CareLog
	if err := c.doJSON(ctx, "GET", "/api/care-logs/caregiver/today", nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) TodayForRecipient(ctx context.Context, recipientID string) (*model.CareLog, error) {
	var l model.CareLog
	path := "/api/care-logs/recipient/" + url.PathEscape(recipientID) + "/today"
	if err := c.doJSON(ctx, "GET", path, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) WeekForRecipient(ctx context.Context, recipientID string) ([]model.WeekDay, error) {
	var days []model.WeekDay
	path := "/api/care-logs/recipient/" + url.PathEscape(recipientID) + "/week"
	if err := c.doJSON(ctx, "GET", path, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (c *Client) UpdateCareLog(ctx context.Context, id string, patch model.CareLogPatch) (*model.CareLog, error) {
	var l model.CareLog
	if err := c.doJSON(ctx, "PATCH", "/api/care-logs/"+url.PathEscape(id), patch, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) SubmitSection(ctx context.Context, id string, section schema.Section) (*model.CareLog, error) {
	var l model.CareLog
	req := model.SubmitSectionRequest{Section: string(section)}
	if err := c.doJSON(ctx, "POST", "/api/care-logs/"+url.PathEscape(id)+"/submit-section", req, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) History(ctx context.Context, id string) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	if err := c.doJSON(ctx, "GET", "/api/care-logs/"+url.PathEscape(id)+"/history", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) CreateRecipient(ctx context.Context, name, dateOfBirth string) (*model.CareRecipient, error) {
	var r model.CareRecipient
	req := model.CreateCareRecipientRequest{Name: name, DateOfBirth: dateOfBirth}
	if err := c.doJSON(ctx, "POST", "/api/care-recipients", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Recipient(ctx context.Context, id string) (*model.CareRecipient, error) {
	var r model.CareRecipient
	if err := c.doJSON(ctx, "GET", "/api/care-recipients/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) CreateCaregiver(ctx context.Context, name, username, recipientID string) (*model.CreateCaregiverResponse, error) {
	var resp model.CreateCaregiverResponse
	req := model.CreateCaregiverRequest{Name: name, Username: username, CareRecipientID: recipientID}
	if err := c.doJSON(ctx, "POST", "/api/caregivers", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("api %s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("api %s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode >= 400:
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}

	if out != nil {
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
	}
	return nil
}
