package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.fingerbank.org/api/v2"

// Statuses worth retrying; everything else fails immediately.
var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RequestStats counts oracle request outcomes.
type RequestStats struct {
	Successful  int64 `json:"successful_requests"`
	Failed      int64 `json:"failed_requests"`
	RateLimited int64 `json:"rate_limited_requests"`
}

// Client queries the Fingerbank combinations API over HTTPS.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	budget     *Budget
	logger     *zap.Logger
	retryDelay time.Duration

	mu    sync.Mutex
	stats RequestStats
}

// NewClient creates an oracle client. baseURL may be empty to use the
// public Fingerbank endpoint. budget may be nil to disable local quota
// enforcement.
func NewClient(baseURL, apiKey string, timeout time.Duration, budget *Budget, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		budget:     budget,
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Stats returns a snapshot of request counters.
func (c *Client) Stats() RequestStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Query interrogates the oracle with the given fingerprint attributes.
// Up to three attempts are made with exponential backoff on transport
// errors and retryable HTTP statuses.
func (c *Client) Query(ctx context.Context, in QueryInput) (*Candidate, error) {
	if c.apiKey == "" {
		c.countFailed()
		return nil, fmt.Errorf("oracle: API key not configured")
	}
	if !c.budget.Allow() {
		c.mu.Lock()
		c.stats.RateLimited++
		c.mu.Unlock()
		return nil, ErrRateLimited
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	if in.Fingerprint != "" {
		params.Set("dhcp_fingerprint", in.Fingerprint)
	}
	if in.VendorClass != "" {
		params.Set("dhcp_vendor_class", in.VendorClass)
	}
	if in.Hostname != "" {
		params.Set("hostname", in.Hostname)
	}
	if in.FQDN != "" {
		params.Set("fqdn", in.FQDN)
	}

	reqURL := c.baseURL + "/combinations/interrogate?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay * (1 << (attempt - 1))
			c.logger.Warn("oracle request failed, retrying",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				c.countFailed()
				return nil, ctx.Err()
			}
		}

		candidate, retryable, err := c.doQuery(ctx, reqURL)
		if err == nil {
			c.mu.Lock()
			c.stats.Successful++
			c.mu.Unlock()
			return candidate, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	if errors.Is(lastErr, ErrRateLimited) {
		c.mu.Lock()
		c.stats.RateLimited++
		c.mu.Unlock()
		return nil, lastErr
	}
	c.countFailed()
	return nil, lastErr
}

func (c *Client) countFailed() {
	c.mu.Lock()
	c.stats.Failed++
	c.mu.Unlock()
}

// doQuery performs a single HTTP attempt. The second return value
// reports whether the failure is worth retrying.
func (c *Client) doQuery(ctx context.Context, reqURL string) (*Candidate, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("oracle request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read oracle response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.parseResponse(body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, ErrNoMatch
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, fmt.Errorf("%w: oracle returned 429", ErrRateLimited)
	case retryStatuses[resp.StatusCode]:
		return nil, true, fmt.Errorf("oracle returned %d: %s", resp.StatusCode, truncate(body, 200))
	default:
		return nil, false, fmt.Errorf("oracle returned %d: %s", resp.StatusCode, truncate(body, 200))
	}
}

// interrogateResponse mirrors the fields we use from the combinations
// endpoint.
type interrogateResponse struct {
	Device struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Category string `json:"category"`
		OS       string `json:"os"`
		Parents  []struct {
			Name string `json:"name"`
		} `json:"parents"`
	} `json:"device"`
	DeviceName      string `json:"device_name"`
	Score           int    `json:"score"`
	Manufacturer    nameField `json:"manufacturer"`
	OperatingSystem nameField `json:"operating_system"`
}

type nameField struct {
	Name string `json:"name"`
}

func (c *Client) parseResponse(body []byte) (*Candidate, bool, error) {
	var resp interrogateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, false, fmt.Errorf("unmarshal oracle response: %w", err)
	}

	if resp.Device.ID == 0 && resp.Device.Name == "" {
		return nil, false, ErrNoMatch
	}

	// The hierarchy runs leaf-first: the matched device, then each
	// ancestor toward the root.
	hierarchy := []string{resp.Device.Name}
	for _, p := range resp.Device.Parents {
		hierarchy = append(hierarchy, p.Name)
	}

	name := resp.DeviceName
	if name == "" {
		name = resp.Device.Name
	}
	os := resp.Device.OS
	if os == "" {
		os = resp.OperatingSystem.Name
	}

	return &Candidate{
		DeviceID:        resp.Device.ID,
		Name:            name,
		Hierarchy:       hierarchy,
		DeviceType:      resp.Device.Category,
		OperatingSystem: os,
		Manufacturer:    resp.Manufacturer.Name,
		Score:           resp.Score,
	}, false, nil
}

func truncate(b []byte, n int) string {
	s := string(b)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
