package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studyseat-dashboard/config"
	"studyseat-dashboard/internal/layout"
)

// Client talks to the seat-assignment backend over its REST contract.
// The backend is the source of truth; the dashboard never persists any of
// the data it returns.
type Client struct {
	baseURL string
	headers map[string]string
	client  *http.Client
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		headers: cfg.Headers,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// dateLayout is the wire format of paymentDate/dueDate fields.
const dateLayout = "2006-01-02"

// CompleteInfo fetches the full student snapshot list and parses its date fields.
func (c *Client) CompleteInfo(ctx context.Context) ([]layout.StudentInfo, error) {
	var students []layout.StudentInfo
	if err := c.getJSON(ctx, "/api/students/complete-info", &students); err != nil {
		return nil, err
	}
	for i := range students {
		students[i].PaymentDateParsed = parseDate(students[i].PaymentDate)
		students[i].DueDateParsed = parseDate(students[i].DueDate)
	}
	return students, nil
}

// AvailableTables fetches the currently vacant table descriptors.
func (c *Client) AvailableTables(ctx context.Context) ([]layout.TableInfo, error) {
	var tables []layout.TableInfo
	if err := c.getJSON(ctx, "/api/students/available-tables", &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// Rooms fetches the room identifiers for the assignment form's selector.
func (c *Client) Rooms(ctx context.Context) ([]layout.RoomOption, error) {
	var rooms []layout.RoomOption
	if err := c.getJSON(ctx, "/api/students/rooms", &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// AssignRequest is the payload for creating a student and assigning a table.
type AssignRequest struct {
	Name          string  `json:"name"`
	ContactNumber string  `json:"contactNumber"`
	RoomNumber    string  `json:"roomNumber"`
	TableNumber   int     `json:"tableNumber"`
	AmountPaid    float64 `json:"amountPaid"`
}

// Assign creates a student and assigns them to a table.
func (c *Client) Assign(ctx context.Context, req AssignRequest) error {
	return c.send(ctx, http.MethodPost, "/api/students/assign", req)
}

// PaymentRequest is the payload for updating one student's payment state.
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Paid   bool    `json:"paid"`
	Months int     `json:"months"`
}

// UpdatePayment updates the payment state for one student.
func (c *Client) UpdatePayment(ctx context.Context, studentID int64, req PaymentRequest) error {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/api/students/%d/payment", studentID), req)
}

// DeleteStudent removes one student, freeing their table.
func (c *Client) DeleteStudent(ctx context.Context, studentID int64) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/students/%d", studentID), nil)
}

// ClearAll removes all student, payment and table-assignment data.
func (c *Client) ClearAll(ctx context.Context) error {
	return c.send(ctx, http.MethodDelete, "/api/cleanup/students", nil)
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", path, err)
	}
	return nil
}

// send performs a mutating request with an optional JSON payload. The response
// body is only inspected on failure.
func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	_, err = c.do(req)
	return err
}

// do executes a request and reads the body. Any non-2xx status is an error
// carrying the response body text verbatim, so handlers can surface the
// backend's message to the user unmodified.
func (c *Client) do(req *http.Request) ([]byte, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("received non-2xx status code: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", msg)
	}

	return body, nil
}

// parseDate converts a wire date string into a time.Time. Absent and malformed
// values both come back nil; callers apply their own defaults.
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
