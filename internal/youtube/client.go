package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tubelist/internal/logging"
	"tubelist/internal/playlist"
	"tubelist/internal/services"
)

const (
	// DefaultBaseURL is the public YouTube Data API v3 endpoint.
	DefaultBaseURL = "https://youtube.googleapis.com/youtube/v3"

	defaultTimeout = 10 * time.Second
	// Any public, long-lived video works as a reachability probe.
	probeVideoID = "dQw4w9WgXcQ"
)

// Snippet carries the basic details of a video.
type Snippet struct {
	PublishedAt  string   `json:"publishedAt"`
	ChannelID    string   `json:"channelId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ChannelTitle string   `json:"channelTitle"`
	Tags         []string `json:"tags"`
	CategoryID   string   `json:"categoryId"`
}

// Item is a single videos.list result.
type Item struct {
	Kind    string  `json:"kind"`
	ID      string  `json:"id"`
	Snippet Snippet `json:"snippet"`
}

// Response models the videos.list payload.
type Response struct {
	Kind  string `json:"kind"`
	Items []Item `json:"items"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client provides access to the videos endpoint of the YouTube Data API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ playlist.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a YouTube client. An empty baseURL selects DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "new client", "youtube api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "youtube")
	return client, nil
}

// ListVideos requests the snippet of every id in one videos.list call.
func (c *Client) ListVideos(ctx context.Context, ids []string) (*Response, error) {
	return c.listVideos(ctx, "snippet", ids)
}

// FetchVideos implements playlist.Provider.
func (c *Client) FetchVideos(ctx context.Context, ids []string) ([]playlist.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	resp, err := c.ListVideos(ctx, ids)
	if err != nil {
		return nil, err
	}
	records := make([]playlist.Record, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, playlist.Record{
			ID:          item.ID,
			Title:       item.Snippet.Title,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}
	return records, nil
}

// Ping verifies that the API is reachable and accepts the configured key.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.listVideos(ctx, "id", []string{probeVideoID})
	return err
}

func (c *Client) listVideos(ctx context.Context, part string, ids []string) (*Response, error) {
	if len(ids) == 0 {
		return &Response{}, nil
	}
	endpoint, err := url.Parse(c.baseURL + "/videos")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "youtube", "parse url", c.baseURL, err)
	}
	params := url.Values{}
	params.Set("part", part)
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "youtube", "build request", "", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "youtube", "videos.list", fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("youtube videos request",
		logging.Int("id_count", len(ids)),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: videos.list: %w", newStatusError(resp))
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrTransport, "youtube", "decode response", "", err)
	}
	return &payload, nil
}

// StatusError reports a non-200 answer from the API. It matches
// services.ErrTransport.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("transport error: youtube returned %d", e.StatusCode)
	}
	return fmt.Sprintf("transport error: youtube returned %d (%s)", e.StatusCode, e.Message)
}

// Is lets errors.Is match services.ErrTransport.
func (e *StatusError) Is(target error) bool {
	return target == services.ErrTransport
}

// Unauthorized reports whether the API rejected the key.
func (e *StatusError) Unauthorized() bool {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}

func newStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(body) == 0 {
		return statusErr
	}
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		statusErr.Message = strings.TrimSpace(apiErr.Error.Message)
	}
	return statusErr
}

// IsAuthError reports whether err came from a rejected API key.
func IsAuthError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Unauthorized()
}
