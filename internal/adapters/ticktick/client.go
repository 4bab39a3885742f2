// Package ticktick implements the TaskGateway secondary port against the
// TickTick Open API. https://developer.ticktick.com/api
package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/example/tickdup/internal/models"
	"github.com/example/tickdup/internal/ports/secondary"
)

const (
	defaultBaseURL = "https://api.ticktick.com/open/v1"

	maxRetries   = 3
	initialDelay = 1 * time.Second
)

// APIError is the single error kind surfaced for any transport or HTTP
// failure from the remote service. StatusCode is zero for transport-level
// failures that never produced a response.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ticktick API error: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("ticktick API request failed: %v", e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Client is an authenticated TickTick Open API client.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

var _ secondary.TaskGateway = (*Client)(nil)

// NewClient creates a client authenticating with the given OAuth access token.
func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{},
	}
}

// NewClientWithBaseURL creates a client against a non-default API base URL.
// Used by tests and self-hosted proxies.
func NewClientWithBaseURL(accessToken, baseURL string) *Client {
	c := NewClient(accessToken)
	c.baseURL = baseURL
	return c
}

// doRequest performs one API request with bounded exponential-backoff
// retry on transport failures and retryable status codes (429, 5xx).
// Non-retryable HTTP errors surface immediately as an *APIError.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, query url.Values, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	reqURL := c.baseURL + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := initialDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &APIError{Err: err}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = &APIError{Err: err}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
		}

		return respBody, nil
	}

	return nil, lastErr
}

// ListProjects retrieves all projects.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/project", nil, nil)
	if err != nil {
		return nil, err
	}

	var projects []models.Project
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects response: %w", err)
	}
	return projects, nil
}

// ProjectTasks retrieves the project data payload and returns the tasks
// embedded in it.
func (c *Client) ProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	endpoint := "/project/" + url.PathEscape(projectID) + "/data"
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	var data models.ProjectData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse project data response: %w", err)
	}
	return data.Tasks, nil
}

// Task retrieves a single task.
func (c *Client) Task(ctx context.Context, projectID, taskID string) (*models.Task, error) {
	endpoint := "/project/" + url.PathEscape(projectID) + "/task/" + url.PathEscape(taskID)
	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to parse task response: %w", err)
	}
	return &task, nil
}

// CompletedTasks retrieves completed tasks, optionally restricted to one
// project and to tasks completed at or after since. Tasks whose
// completedTime cannot be parsed are skipped when a window is set.
func (c *Client) CompletedTasks(ctx context.Context, projectID string, since time.Time) ([]models.Task, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("projectId", projectID)
	}

	body, err := c.doRequest(ctx, http.MethodGet, "/task/completed", query, nil)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse completed tasks response: %w", err)
	}

	if since.IsZero() {
		return tasks, nil
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CompletedTime == "" {
			continue
		}
		completed, err := models.ParseTimestamp(t.CompletedTime)
		if err != nil {
			continue
		}
		if !completed.Before(since) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// CreateTask creates a new task from a draft.
func (c *Client) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/task", nil, draft)
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return nil, fmt.Errorf("failed to parse created task response: %w", err)
	}
	return &task, nil
}
