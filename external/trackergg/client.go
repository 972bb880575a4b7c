package trackergg

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lft-board/internal/domain/player"
	"github.com/riskibarqy/lft-board/internal/domain/profile"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/platform/resilience"
	"github.com/riskibarqy/lft-board/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL    = "https://public-api.tracker.gg"
	profilePath       = "/v2/apex/standard/profile/"
	userAgent         = "apex-matching/1.0"
	maxResponseBytes  = 4 << 20
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

var errTrackerTransient = crerr.New("tracker transient failure")

type Config struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads Apex profiles from tracker.gg.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                userAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		retryDelay: retryDelay,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, resilience.LogStateChanges(logger, "tracker")),
	}
}

// FetchProfile loads and normalizes one player's profile.
func (c *Client) FetchProfile(ctx context.Context, platform player.Platform, playerID string) (profile.External, error) {
	if !platform.IsSet() {
		return profile.External{}, fmt.Errorf("%w: unsupported platform %q", usecase.ErrInvalidInput, platform)
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return profile.External{}, fmt.Errorf("%w: player id is required", usecase.ErrInvalidInput)
	}
	if c.apiKey == "" {
		return profile.External{}, fmt.Errorf("%w: tracker api key is not configured", usecase.ErrDependencyUnavailable)
	}

	endpoint := c.profileURL(platform, playerID)
	out, err, _ := c.flight.Do(endpoint, func() (any, error) {
		var raw []byte
		reqErr := c.breaker.Do(func() error {
			var err error
			raw, err = c.executeRequest(ctx, endpoint)
			return err
		}, isCircuitFailure)
		return raw, reqErr
	})
	switch {
	case err == nil:
	case stderrors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "tracker circuit breaker rejected request", "state", c.breaker.State())
		return profile.External{}, fmt.Errorf("%w: stat provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case isCircuitFailure(err):
		return profile.External{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return profile.External{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return profile.External{}, fmt.Errorf("unexpected tracker payload type %T", out)
	}

	var envelope profileEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return profile.External{}, fmt.Errorf("%w: decode tracker payload: %v", usecase.ErrDependencyUnavailable, err)
	}
	return envelope.toExternal(platform, playerID, raw), nil
}

func (c *Client) profileURL(platform player.Platform, playerID string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(profilePath)
	_, _ = buf.WriteString(platform.String())
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(url.PathEscape(playerID))
	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := c.do(ctx, endpoint)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !isCircuitFailure(err) || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "tracker request failed", "url", endpoint, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("TRN-Api-Key", c.apiKey)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetUserAgent(userAgent)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send tracker request"), errTrackerTransient)
	}

	status := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	switch {
	case status >= 200 && status < 300:
		return body, nil
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: tracker profile not found", usecase.ErrNotFound)
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return nil, fmt.Errorf("%w: tracker rejected credentials (status=%d)", usecase.ErrDependencyUnavailable, status)
	case isRetryableStatus(status):
		return nil, crerr.Mark(crerr.Newf("tracker status=%d body=%s", status, abbreviate(body)), errTrackerTransient)
	default:
		return nil, fmt.Errorf("%w: tracker status=%d", usecase.ErrDependencyUnavailable, status)
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func isCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errTrackerTransient) && !stderrors.Is(err, context.Canceled)
}

func abbreviate(body []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(body))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
