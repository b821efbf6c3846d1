package poll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTimeout bounds one HTTP poll attempt.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response body is read. Dashboard payloads
// are small; anything larger is a misbehaving endpoint.
const maxBodyBytes = 1 << 20

// AuthHeader is the header carrying the static credential, when configured.
const AuthHeader = "X-Auth-Token"

// HTTPSource polls a single HTTP endpoint with a bounded timeout.
type HTTPSource struct {
	name      string
	url       string
	authToken string
	timeout   time.Duration
	client    *http.Client

	// textFallback enables the health-endpoint degradation: when the body
	// is not valid JSON but is plain text, a minimal payload is synthesized
	// from the raw text instead of failing. Structured stats endpoints keep
	// strict decoding.
	textFallback bool
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithAuthToken sets the static credential sent as the X-Auth-Token header.
func WithAuthToken(token string) HTTPOption {
	return func(s *HTTPSource) { s.authToken = token }
}

// WithTimeout overrides the default 5s per-attempt timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithTextFallback enables the plain-text degradation for health-style
// endpoints.
func WithTextFallback() HTTPOption {
	return func(s *HTTPSource) { s.textFallback = true }
}

// WithClient sets a shared http.Client. The client's own Timeout is left
// alone; the per-attempt bound comes from the poll context.
func WithClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// NewHTTPSource creates a poller for url, identified by name in snapshots.
func NewHTTPSource(name, url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		name:    name,
		url:     url,
		timeout: DefaultTimeout,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the source identifier.
func (s *HTTPSource) Name() string { return s.name }

// URL returns the polled URL.
func (s *HTTPSource) URL() string { return s.url }

// Poll issues one GET against the endpoint. The attempt is bounded by the
// source timeout regardless of the parent context.
func (s *HTTPSource) Poll(ctx context.Context) (Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, failf(ReasonNetworkRefused, "bad request: %v", err)
	}
	if s.authToken != "" {
		req.Header.Set(AuthHeader, s.authToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, classifyNetErr(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyNetErr(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Failure{
			Reason:  ReasonHTTPStatus,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, s.url),
			Status:  resp.StatusCode,
		}
	}

	return s.decode(body)
}

// decode parses the body as a JSON object, applying the plain-text fallback
// when enabled.
func (s *HTTPSource) decode(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err == nil && p != nil {
		return p, nil
	}

	if s.textFallback {
		text := strings.TrimSpace(string(body))
		if text != "" && utf8.ValidString(text) {
			// Degraded upstream format: treat the raw text as the status.
			return Payload{"status": text, "degraded": true}, nil
		}
	}

	return nil, failf(ReasonDecode, "body from %s is not a JSON object", s.url)
}

// classifyNetErr maps a transport error onto the failure taxonomy. Anything
// that is not a timeout lands in the refused/unreachable bucket; the message
// keeps the detail.
func classifyNetErr(err error) *Failure {
	var nerr interface{ Timeout() bool }
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return failf(ReasonNetworkTimeout, "request timed out")
	case errors.As(err, &nerr) && nerr.Timeout():
		return failf(ReasonNetworkTimeout, "request timed out: %v", err)
	default:
		return failf(ReasonNetworkRefused, "%v", err)
	}
}
