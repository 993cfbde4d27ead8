package trustedemployee

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	util_http "github.com/craibuc/trustedemployee/pkg/util/http"
	util_xml "github.com/craibuc/trustedemployee/pkg/util/xml"
	gklog "github.com/go-kit/log"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultTimeout = 30 * time.Second

// Client talks to the screening vendor's XML API. All exchanges are
// synchronous; the client holds no state between calls beyond its
// configuration.
type Client struct {
	cfg     Config
	baseURL string

	httpClient *retryablehttp.Client
	metrics    *clientMetrics
	log        gklog.Logger
}

func New(cfg Config, reg prometheus.Registerer, log gklog.Logger) (*Client, error) {
	base, err := cfg.baseURL()
	if err != nil {
		return nil, errors.Wrap(err, "resolve vendor server url")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = cfg.RetryMax
	hc.HTTPClient.Timeout = timeout
	hc.Logger = nil
	// Vendor responses are never retried, whatever their status; only
	// transport failures are, and only when retry_max is set.
	hc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	return &Client{
		cfg:        cfg,
		baseURL:    base,
		httpClient: hc,
		metrics:    newClientMetrics(reg),
		log:        log,
	}, nil
}

// post issues one XML POST and returns the raw 2xx response body.
// Transport failures and non-2xx statuses both surface as
// *RequestFailedError.
func (c *Client) post(ctx context.Context, op, path, body string) ([]byte, error) {
	req, err := retryablehttp.NewRequest(http.MethodPost, c.baseURL+path, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, op+" create request")
	}
	req.Header.Set("Content-Type", "application/xml")

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.metrics.observe(op, outcomeTransportError)
		return nil, &RequestFailedError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if err := util_http.EnsureSuccessStatusCode(resp); err != nil {
		c.metrics.observe(op, outcomeHTTPError)

		ferr := &RequestFailedError{Op: op, Err: err}
		var statusErr *util_http.StatusError
		if errors.As(err, &statusErr) {
			ferr.StatusCode = statusErr.StatusCode
			ferr.Body = statusErr.Body
			ferr.Err = nil
		}
		return nil, ferr
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.observe(op, outcomeTransportError)
		return nil, &RequestFailedError{Op: op, Err: err}
	}

	c.metrics.observe(op, outcomeSuccess)
	return b, nil
}

func writePartnerInfo(sb *strings.Builder, partnerID, password string) {
	sb.WriteString("<PartnerInfo>")
	writeElem(sb, "PartnerId", util_xml.Escape(partnerID))
	writeElem(sb, "Password", util_xml.Escape(password))
	sb.WriteString("</PartnerInfo>")
}
