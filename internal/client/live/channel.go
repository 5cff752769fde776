// Package live subscribes to the event service's Server-Sent-Events stream
// and hands decoded updates to a Handler in delivery order.
//
// Reconnection belongs to the transport: the sse client retries with an
// exponential backoff. Every failed attempt is reported to the Handler as a
// transient error so the owner can re-validate the event.
package live

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
	"github.com/google/uuid"
	"github.com/r3labs/sse/v2"
)

// ErrTransient wraps every error passed to Handler.OnTransportError.
var ErrTransient = errors.New("live channel interrupted")

// Handler receives what the channel delivers. Calls are made from a single
// goroutine, one at a time.
type Handler interface {
	// OnConnect runs each time the server accepts the stream.
	OnConnect(ctx context.Context)
	OnUpdate(ctx context.Context, u models.LiveUpdate)
	OnTransportError(ctx context.Context, err error)
}

// URLSource builds the stream URL for an invite key.
type URLSource interface {
	LiveURL(eventKey string) string
}

type Channel struct {
	urls       URLSource
	http       *http.Client
	log        logging.Logger
	newBackoff func() backoff.BackOff
	// pause between a cleanly closed stream and the next subscription.
	pause time.Duration

	unknown atomic.Int64
}

type Option func(*Channel)

// WithBackoff replaces the reconnect policy.
func WithBackoff(fn func() backoff.BackOff) Option {
	return func(c *Channel) { c.newBackoff = fn }
}

// WithHTTPClient sets the client used for the stream. It must not have a
// timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Channel) { c.http = hc }
}

// WithResubscribePause sets the wait after the server ends a stream.
func WithResubscribePause(d time.Duration) Option {
	return func(c *Channel) { c.pause = d }
}

func NewChannel(urls URLSource, log logging.Logger, opts ...Option) *Channel {
	if log == nil {
		log = logging.Nop()
	}
	c := &Channel{
		urls: urls,
		http: &http.Client{},
		log:  log,
		newBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.MaxElapsedTime = 0
			return b
		},
		pause: time.Second,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Unknown counts messages that decoded as KindUnknown.
func (c *Channel) Unknown() int64 {
	return c.unknown.Load()
}

// Run streams updates for eventKey into h until ctx is cancelled.
func (c *Channel) Run(ctx context.Context, eventKey string, h Handler) error {
	url := c.urls.LiveURL(eventKey)
	log := c.log.With("event_key", eventKey)

	for {
		sc := sse.NewClient(url)
		sc.Connection = c.http
		sc.Headers = map[string]string{"X-Request-Id": uuid.NewString()}
		sc.ReconnectStrategy = backoff.WithContext(c.newBackoff(), ctx)
		sc.ResponseValidator = func(_ *sse.Client, resp *http.Response) error {
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("stream rejected: %s", resp.Status)
			}
			h.OnConnect(ctx)
			return nil
		}
		sc.ReconnectNotify = func(err error, next time.Duration) {
			if ctx.Err() != nil {
				return
			}
			log.Warn(ctx, "live stream error", "error", err, "retry_in", next)
			h.OnTransportError(ctx, fmt.Errorf("%w: %v", ErrTransient, err))
		}

		log.Debug(ctx, "live stream subscribing", "url", url)
		err := sc.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
			if len(msg.Data) == 0 || ctx.Err() != nil {
				return
			}
			c.deliver(ctx, log, msg.Data, h)
		})
		if ctx.Err() != nil {
			return nil
		}

		if err == nil {
			err = errors.New("stream closed by server")
		}
		log.Warn(ctx, "live stream ended", "error", err)
		h.OnTransportError(ctx, fmt.Errorf("%w: %v", ErrTransient, err))

		t := time.NewTimer(c.pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

func (c *Channel) deliver(ctx context.Context, log logging.Logger, data []byte, h Handler) {
	u, err := Decode(data)
	if err != nil {
		log.Warn(ctx, "malformed live message", "error", err)
	}
	if u.Kind == models.KindUnknown {
		c.unknown.Add(1)
		log.Debug(ctx, "ignoring live message", "type", u.RawType)
	}
	h.OnUpdate(ctx, u)
}
