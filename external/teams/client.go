package teams

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/resilience"
)

const (
	defaultBaseURL = "http://localhost:8082"
	defaultPath    = "/api/teams"
	defaultTimeout = 3 * time.Second
	maxBodySize    = 4 << 20
)

// ErrTransient marks failures that count against the circuit breaker.
var ErrTransient = crerr.New("teams service transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Path           string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches the team list from the teams service.
type Client struct {
	httpClient *fasthttp.Client
	url        string
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                "players-service",
			MaxResponseBodySize: maxBodySize,
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		httpClient: httpClient,
		url:        buildURL(cfg.BaseURL, cfg.Path),
		timeout:    timeout,
		logger:     logger.Named("teams"),
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

// FetchTeams performs one bounded GET and returns the id to name mapping.
func (c *Client) FetchTeams(ctx context.Context) (map[int64]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "fetch teams"), ErrTransient)
	}

	var body []byte
	err := c.breaker.Run(func() error {
		raw, reqErr := c.get(ctx)
		body = raw
		return reqErr
	}, isCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "teams circuit breaker rejected request", "state", c.breaker.State())
		}
		return nil, err
	}

	var list teamList
	if err := sonic.Unmarshal(body, &list); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode teams body=%s", abbreviateBody(body)), ErrTransient)
	}

	return list.names(), nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := c.httpClient.DoTimeout(req, resp, c.requestTimeout(ctx)); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "get %s", c.url), ErrTransient)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, crerr.Mark(
			crerr.Newf("teams service status=%d body=%s", status, abbreviateBody(resp.Body())),
			ErrTransient,
		)
	}

	// resp is returned to the pool on exit.
	return append([]byte(nil), resp.Body()...), nil
}

func (c *Client) requestTimeout(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, ErrTransient)
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
