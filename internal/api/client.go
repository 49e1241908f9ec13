// Package api is the REST client for the routing backend. Each method issues
// exactly one HTTP request; there are no retries and no caching.
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
	"time"
	"unicode/utf8"

	"github.com/zulandar/relaydesk/internal/models"
)

// DefaultTimeout bounds every request issued by a client built with New.
const DefaultTimeout = 10 * time.Second

// Ack is the raw body returned by mutating endpoints. The backend is free to
// return the created entity, a status object, or nothing.
type Ack = json.RawMessage

// maxErrorBody caps how many bytes of a response body an error message quotes.
const maxErrorBody = 200

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		cut := maxErrorBody
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "…"
	}
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// Client talks to the routing backend.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// New returns a Client with the fixed request timeout.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// ListWorkspaces returns every connected workspace.
func (c *Client) ListWorkspaces(ctx context.Context) ([]models.Workspace, error) {
	var out []models.Workspace
	if err := c.do(ctx, http.MethodGet, "/api/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// ListChannels returns the channels of one workspace.
func (c *Client) ListChannels(ctx context.Context, teamID string) ([]models.Channel, error) {
	var out []models.Channel
	path := "/api/workspaces/" + url.PathEscape(teamID) + "/channels"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// MarkInternal designates a workspace as the internal one.
func (c *Client) MarkInternal(ctx context.Context, teamID string) (Ack, error) {
	var ack Ack
	path := "/api/workspaces/" + url.PathEscape(teamID) + "/mark-internal"
	err := c.do(ctx, http.MethodPost, path, nil, &ack)
	return ack, err
}

// ListRoutes returns every route.
func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var out []models.Route
	if err := c.do(ctx, http.MethodGet, "/api/routes", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// CreateRoute creates a route.
func (c *Client) CreateRoute(ctx context.Context, draft models.RouteDraft) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodPost, "/api/routes", draft, &ack)
	return ack, err
}

// DeleteRoute deletes a route by id.
func (c *Client) DeleteRoute(ctx context.Context, routeID string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodDelete, "/api/routes/"+url.PathEscape(routeID), nil, &ack)
	return ack, err
}

// ListIdentityMappings returns every identity mapping.
func (c *Client) ListIdentityMappings(ctx context.Context) ([]models.IdentityMapping, error) {
	var out []models.IdentityMapping
	if err := c.do(ctx, http.MethodGet, "/api/identity-mappings", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// CreateIdentityMapping creates an identity mapping.
func (c *Client) CreateIdentityMapping(ctx context.Context, draft models.MappingDraft) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodPost, "/api/identity-mappings", draft, &ack)
	return ack, err
}

// DeleteIdentityMapping deletes a mapping by key.
func (c *Client) DeleteIdentityMapping(ctx context.Context, key string) (Ack, error) {
	var ack Ack
	err := c.do(ctx, http.MethodDelete, "/api/identity-mappings/"+url.PathEscape(key), nil, &ack)
	return ack, err
}

func (c *Client) endpoint(path string) (string, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", fmt.Errorf("missing api base url")
	}
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid api url: %w", err)
	}
	// path is already escaped; keep it that way on the way out.
	u.RawPath = strings.TrimRight(u.EscapedPath(), "/") + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return "", fmt.Errorf("invalid api path: %w", err)
	}
	u.Path = unescaped
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return err
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	var r io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
		r = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(c.Token) != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(b)}
	}
	if len(bytes.TrimSpace(b)) == 0 || out == nil {
		return nil
	}
	if raw, ok := out.(*Ack); ok {
		*raw = append((*raw)[:0], b...)
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
