package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shareit-backend/internal/mw"
)

// forwardedHeaders are the request headers passed on to the server.
var forwardedHeaders = []string{mw.UserIDHeader, "Content-Type", "Accept"}

// Client forwards gateway requests to the business server.
type Client struct {
	baseURL string
	client  *http.Client
}

// Response is a server response relayed to the caller unchanged.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{},
			Timeout:   timeout,
		},
	}
}

// Forward sends method path?rawQuery with body to the server. Any server status is a
// valid response; only transport failures return an error.
func (c *Client) Forward(ctx context.Context, method, path, rawQuery string, header http.Header, body []byte) (*Response, error) {
	target, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream url: %w", err)
	}
	target.RawQuery = rawQuery

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for _, key := range forwardedHeaders {
		if v := header.Get(key); v != "" {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
