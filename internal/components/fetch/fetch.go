package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"owprofile-backend/internal/components/assert"
	"owprofile-backend/internal/components/telemetry"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	report_client_get = "client.get"
)

// API fetches the body of a page.
//
// note: fault injection point
type API interface {
	Get(ctx context.Context, url string) (string, error)
}

// HttpError is returned when upstream answers with anything but 200 OK.
type HttpError struct {
	StatusCode int
	Url        string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("GET %s: upstream responded with %d %s", e.Url, e.StatusCode, http.StatusText(e.StatusCode))
}

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond and Burst configure a token bucket shared by every request
	// made through the client.
	RequestsPerSecond float64
	Burst             int
	// CloudflareBypass wraps the transport so that requests look like they come from
	// a browser, it adds headers of its own.
	CloudflareBypass bool
}

func DefaultOptions() Options {
	return Options{
		UserAgent:         DefaultUserAgent,
		Timeout:           time.Second * 30,
		RequestsPerSecond: 2,
		// max burst >= 2 just means that no requests will be dropped
		Burst: 2,
	}
}

// Client is the standard implementation of API using resty.
type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(opts Options, tel telemetry.API) *Client {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.UserAgent)
	assert.Positive("requests per second", opts.RequestsPerSecond)
	assert.Positive("burst", opts.Burst)

	tel = telemetry.NewScopedAPI("fetch", tel)

	httpClient := resty.New()
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)

	rateLimiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		http: httpClient,
		tel:  tel,
	}
}

// Get returns the body of url. The status code is checked before the body is
// read, non-200 responses become *HttpError and transport failures are
// returned as is.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return "", err
	}
	body := res.RawBody()
	defer body.Close()

	if res.StatusCode() != http.StatusOK {
		return "", &HttpError{StatusCode: res.StatusCode(), Url: url}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		c.tel.ReportBroken(report_client_get, fmt.Errorf("read body: %w", err), url)
		return "", err
	}
	return string(data), nil
}
