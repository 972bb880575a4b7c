package anubis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/lft-board/internal/domain/user"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"github.com/riskibarqy/lft-board/internal/platform/resilience"
	"github.com/riskibarqy/lft-board/internal/usecase"
)

const (
	DefaultUserPath    = "/auth/v1/user"
	defaultCacheSize   = 10000
	maxUserBodyBytes   = 1 << 20
	defaultHTTPTimeout = 5 * time.Second
)

var errRemoteTransient = crerr.New("auth service transient failure")

// isCircuitFailure counts only outages and throttling against the breaker.
// A rejected token is a healthy answer.
func isCircuitFailure(err error) bool {
	return err != nil && crerr.Is(err, errRemoteTransient)
}

type Config struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserPath       string
	APIKey         string
	CacheTTL       time.Duration
	CacheSize      int
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
}

// Client verifies access tokens by asking the auth service who owns them.
type Client struct {
	httpClient *http.Client
	userURL    string
	apiKey     string
	cache      *principalCache
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	path := cfg.UserPath
	if strings.TrimSpace(path) == "" {
		path = DefaultUserPath
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}

	return &Client{
		httpClient: httpClient,
		userURL:    userEndpoint(cfg.BaseURL, path),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		cache:      newPrincipalCache(cfg.CacheTTL, size),
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker, resilience.LogStateChanges(logger, "auth")),
		logger:     logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	if principal, ok := c.cache.Get(token); ok {
		return principal, nil
	}

	var principal user.Principal
	err := c.breaker.Do(func() error {
		var fetchErr error
		principal, fetchErr = c.fetchUser(ctx, token)
		return fetchErr
	}, isCircuitFailure)
	switch {
	case err == nil:
	case crerr.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: auth service is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case isCircuitFailure(err):
		c.logger.WarnContext(ctx, "auth service request failed", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	default:
		return user.Principal{}, err
	}

	c.cache.Set(token, principal)
	return principal, nil
}

func (c *Client) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, fmt.Errorf("create user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "request auth user"), errRemoteTransient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserBodyBytes))
	if err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "read auth user response"), errRemoteTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return user.Principal{}, crerr.Mark(crerr.Newf("auth service status=%d", resp.StatusCode), errRemoteTransient)
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "auth user lookup non-200", "status_code", resp.StatusCode)
		return user.Principal{}, fmt.Errorf("%w: auth service status=%d", usecase.ErrUnauthorized, resp.StatusCode)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: decode auth user: %v", usecase.ErrDependencyUnavailable, err)
	}
	if strings.TrimSpace(decoded.ID) == "" {
		return user.Principal{}, fmt.Errorf("%w: auth user id is empty", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: decoded.ID, Email: decoded.Email}, nil
}

// userEndpoint joins the user path onto the auth base URL. An absolute path
// replaces the base.
func userEndpoint(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if ref, err := url.Parse(path); err == nil && ref.IsAbs() {
		return path
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if path == "" {
		return base
	}
	joined, err := url.JoinPath(base, path)
	if err != nil {
		return base + "/" + strings.TrimLeft(path, "/")
	}
	return joined
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
