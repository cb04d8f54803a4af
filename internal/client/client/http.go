package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/aztectemple/internal/client/models"
	"github.com/dmitrijs2005/aztectemple/internal/common"
	"github.com/dmitrijs2005/aztectemple/internal/logging"
)

const (
	maxResponseBytes = 1 << 20

	attestationPrefix = "aztec-temple-verification-"
	isoMillis         = "2006-01-02T15:04:05.000Z"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     logging.Logger
	now     func() time.Time

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *HTTPClient) { c.now = now }
}

// NewHTTPClient builds a client for baseURL (e.g. "http://127.0.0.1:3001/api")
// and picks up a previously stored token, if any.
func NewHTTPClient(ctx context.Context, baseURL string, store TokenStore, log logging.Logger, opts ...Option) (*HTTPClient, error) {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   store,
		log:     log.With("component", "api"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	token, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stored token: %w", err)
	}
	c.token = token

	c.log.Info(ctx, "api initialized", "base_url", c.baseURL, "has_token", token != "")
	return c, nil
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken persists token and attaches it to all subsequent requests.
func (c *HTTPClient) SetToken(ctx context.Context, token string) error {
	if err := c.store.Save(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.log.Info(ctx, "token saved")
	return nil
}

// ClearToken drops the in-memory token first, then the stored entry, so no
// further request carries it even when the store fails.
func (c *HTTPClient) ClearToken(ctx context.Context) error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()

	if err := c.store.Delete(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	c.log.Info(ctx, "token cleared")
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, in, out any) error {
	url := c.baseURL + endpoint

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		body = bytes.NewReader(b)
	}

	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &RequestError{Message: err.Error(), Err: err}
	}

	req.Header.Set("Content-Type", common.ContentTypeJSON)
	req.Header.Set(common.RequestIDHeader, requestID)
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	log := c.log.With("method", method, "url", url)
	log.Info(ctx, "api request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "api error", "error", err)
		return &RequestError{Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Error(ctx, "api error", "error", err)
		return &RequestError{StatusCode: resp.StatusCode, Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.failure(ctx, log, resp.StatusCode, raw)
	}

	if out == nil {
		var discard any
		out = &discard
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Error(ctx, "api error", "status", resp.StatusCode, "error", err)
		return &RequestError{StatusCode: resp.StatusCode, Message: "invalid response from server", Err: err}
	}
	return nil
}

func (c *HTTPClient) failure(ctx context.Context, log logging.Logger, status int, raw []byte) error {
	var eb models.ErrorBody
	_ = json.Unmarshal(raw, &eb)

	rerr := &RequestError{StatusCode: status, Message: eb.Error}
	if rerr.Message == "" {
		rerr.Message = defaultFailureMessage
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		rerr.Err = ErrUnauthorized
	}

	log.Error(ctx, "api error", "status", status, "error", rerr.Message)
	return rerr
}

// Health probes the liveness endpoint. Any failure is reported as
// ErrCannotConnect; the cause only goes to the log.
func (c *HTTPClient) Health(ctx context.Context) error {
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		c.log.Warn(ctx, "health check failed", "error", err)
		return ErrCannotConnect
	}
	return nil
}

func (c *HTTPClient) VerifyUsername(ctx context.Context, username string) (*models.LoginResult, error) {
	var res models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/twitter/verify-username", models.VerifyUsernameRequest{Username: username}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Session, error) {
	var res models.Session
	if err := c.do(ctx, http.MethodGet, "/game/profile", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) VerifyAttestation(ctx context.Context) (*models.AttestationResult, error) {
	req := models.AttestationRequest{
		AttestationData: fmt.Sprintf("%s%d", attestationPrefix, c.now().UnixMilli()),
	}

	var res models.AttestationResult
	if err := c.do(ctx, http.MethodPost, "/game/verify-attestation", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SubmitProposal sends content suffixed with the current UTC time.
func (c *HTTPClient) SubmitProposal(ctx context.Context, content string) (*models.ProposalResult, error) {
	req := models.ProposalRequest{
		ProposalContent: content + " - " + c.now().UTC().Format(isoMillis),
	}

	var res models.ProposalResult
	if err := c.do(ctx, http.MethodPost, "/game/submit-proposal", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetLeaderboard(ctx context.Context) (*models.Leaderboard, error) {
	var res models.Leaderboard
	if err := c.do(ctx, http.MethodGet, "/game/leaderboard", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
