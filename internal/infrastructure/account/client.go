package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/Stembetevo/fairplay/internal/domain/user"
	"github.com/Stembetevo/fairplay/internal/platform/cache"
	"github.com/Stembetevo/fairplay/internal/platform/logging"
	"github.com/Stembetevo/fairplay/internal/platform/resilience"
	"github.com/Stembetevo/fairplay/internal/usecase"
)

const (
	defaultIntrospectPath = "/v1/tokens/introspect"
	defaultTimeout        = 5 * time.Second
	maxResponseBytes      = 1 << 20
)

var errAccountTransient = crerr.New("account service transient failure")

// TokenVerifier resolves a bearer token to the principal behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (user.Principal, error)
}

type ClientConfig struct {
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	CacheTTL       time.Duration
}

// Client verifies tokens against the account service introspection
// endpoint. Verified principals are cached briefly so a burst of
// requests with the same token costs one upstream call.
type Client struct {
	http           *fasthttp.Client
	introspectURL  string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	principals     *cache.Store
	timeout        time.Duration
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("account base url is required")
	}

	introspectPath := strings.TrimSpace(cfg.IntrospectPath)
	if introspectPath == "" {
		introspectPath = defaultIntrospectPath
	}
	if !strings.HasPrefix(introspectPath, "/") {
		introspectPath = "/" + introspectPath
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	var principals *cache.Store
	if cfg.CacheTTL > 0 {
		principals = cache.NewStore(cfg.CacheTTL)
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		},
		introspectURL:  baseURL + introspectPath,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		principals:     principals,
		timeout:        timeout,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (c *Client) Verify(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty token", usecase.ErrUnauthorized)
	}

	if cached, ok := c.principals.Get(ctx, token); ok {
		if principal, ok := cached.(user.Principal); ok {
			return principal, nil
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "account circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(token, func() (any, error) {
		principal, reqErr := c.introspect(ctx, token)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errAccountTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		if reqErr != nil {
			return nil, reqErr
		}
		return principal, nil
	})
	if err != nil {
		if crerr.Is(err, errAccountTransient) {
			return user.Principal{}, fmt.Errorf("%w: account service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return user.Principal{}, err
	}

	principal, ok := out.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspection result type %T", out)
	}
	c.principals.Set(ctx, token, principal)

	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	payload, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("encode introspection request: %w", err)
	}
	if _, err := body.Write(payload); err != nil {
		return user.Principal{}, fmt.Errorf("buffer introspection request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.introspectURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body.B)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return user.Principal{}, crerr.Wrapf(errAccountTransient, "send introspection request: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusUnauthorized:
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	case status >= 500 || status == fasthttp.StatusTooManyRequests:
		return user.Principal{}, crerr.Wrapf(errAccountTransient, "account status=%d", status)
	case status < 200 || status >= 300:
		return user.Principal{}, fmt.Errorf("account status=%d", status)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("decode introspection response: %w", err)
	}
	if !decoded.Active || decoded.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: token is not active", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID:   decoded.UserID,
		Username: decoded.Username,
	}, nil
}
