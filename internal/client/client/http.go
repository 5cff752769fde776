package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request uuid for log correlation.
const RequestIDHeader = "X-Request-Id"

const apiPrefix = "/api"

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the service rooted at baseURL
// (e.g. "https://guess.example.com"). timeout bounds every REST call; the
// live stream does not go through this client.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

func (c *HTTPClient) endpoint(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return c.baseURL.String() + apiPrefix + "/" + strings.Join(escaped, "/")
}

func (c *HTTPClient) LiveURL(eventKey string) string {
	return c.endpoint("events", "live") + "?" + url.Values{"event_key": {eventKey}}.Encode()
}

// do sends one request. token, when non-empty, goes into the Authorization
// header as a bearer credential. out may be nil for bodiless responses.
func (c *HTTPClient) do(ctx context.Context, method, target, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Warn(ctx, "request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request completed",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := mapStatus(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrSubmissionFailed, err)
	}
	return nil
}

func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return &StatusError{Status: code, Err: ErrNotFound}
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return &StatusError{Status: code, Err: ErrUnauthorized}
	case code == http.StatusBadGateway, code == http.StatusServiceUnavailable, code == http.StatusGatewayTimeout:
		return &StatusError{Status: code, Err: ErrUnavailable}
	default:
		return &StatusError{Status: code, Err: ErrSubmissionFailed}
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, c.endpoint("health"), "", nil, nil)
	if err != nil && !errors.Is(err, ErrUnavailable) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func (c *HTTPClient) GetEventByKey(ctx context.Context, key string) (*models.Event, error) {
	var e models.Event
	if err := c.do(ctx, http.MethodGet, c.endpoint("events", "by-key", key), "", nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) ListGuesses(ctx context.Context, eventID string) ([]models.Guess, error) {
	var gs []models.Guess
	if err := c.do(ctx, http.MethodGet, c.endpoint("events", eventID, "guesses"), "", nil, &gs); err != nil {
		return nil, err
	}
	return gs, nil
}

func (c *HTTPClient) CreateEvent(ctx context.Context, req models.NewEvent) (*models.EventWithSecret, error) {
	var e models.EventWithSecret
	if err := c.do(ctx, http.MethodPost, c.endpoint("events"), "", req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) SubmitGuess(ctx context.Context, eventID string, sub models.GuessSubmission) (*models.SubmitResult, error) {
	var r models.SubmitResult
	if err := c.do(ctx, http.MethodPost, c.endpoint("events", eventID, "guesses"), "", sub, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) UpdateGuess(ctx context.Context, eventID, inviteeID, token string, sub models.GuessSubmission) (*models.Guess, error) {
	var g models.Guess
	if err := c.do(ctx, http.MethodPut, c.endpoint("events", eventID, "guesses", inviteeID), token, sub, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (c *HTTPClient) DeleteGuess(ctx context.Context, eventID, inviteeID, secret string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("events", eventID, "guesses", inviteeID), secret, nil, nil)
}

func (c *HTTPClient) ClaimEvent(ctx context.Context, eventID, secret string) (*models.Event, error) {
	var e models.Event
	if err := c.do(ctx, http.MethodPost, c.endpoint("events", eventID, "claim"), secret, nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type descriptionRequest struct {
	Description *string `json:"description"`
}

func (c *HTTPClient) UpdateDescription(ctx context.Context, eventID, secret string, description *string) (*models.Event, error) {
	var e models.Event
	req := descriptionRequest{Description: description}
	if err := c.do(ctx, http.MethodPut, c.endpoint("events", eventID, "description"), secret, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type settingsRequest struct {
	AllowGuessEdits bool `json:"allow_guess_edits"`
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, eventID, secret string, allowGuessEdits bool) (*models.Event, error) {
	var e models.Event
	req := settingsRequest{AllowGuessEdits: allowGuessEdits}
	if err := c.do(ctx, http.MethodPut, c.endpoint("events", eventID, "settings"), secret, req, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type answerRequest struct {
	BirthDate     timex.LocalTime `json:"birth_date"`
	BirthWeightKg float64         `json:"birth_weight_kg"`
}

func (c *HTTPClient) SetAnswer(ctx context.Context, eventID, secret string, birthDate timex.LocalTime, birthWeightKg float64) (*models.EndedAnnouncement, error) {
	var a models.EndedAnnouncement
	req := answerRequest{BirthDate: birthDate, BirthWeightKg: birthWeightKg}
	if err := c.do(ctx, http.MethodPost, c.endpoint("events", eventID, "answer"), secret, req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) DeleteEvent(ctx context.Context, eventID, secret string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint("events", eventID), secret, nil, nil)
}
