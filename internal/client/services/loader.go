package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
)

// Loader fetches the initial state of an event page.
//
// Contract:
//   - LoadEvent: any non-success HTTP status, or a body that cannot be
//     decoded, is reported as client.ErrNotFound (wrapping the cause) and
//     the caller leaves the event. A request that got no response at all
//     (client.ErrUnavailable without a status) or a cancelled context is
//     returned as is, since neither says anything about the event.
//   - LoadGuesses: best effort; a failure is logged and yields no guesses.
type Loader interface {
	LoadEvent(ctx context.Context, key string) (*models.Event, error)
	LoadGuesses(ctx context.Context, eventID string) []models.Guess
}

type loader struct {
	client client.Client
	log    logging.Logger
}

func NewLoader(c client.Client, log logging.Logger) Loader {
	if log == nil {
		log = logging.Nop()
	}
	return &loader{client: c, log: log}
}

func (l *loader) LoadEvent(ctx context.Context, key string) (*models.Event, error) {
	ev, err := l.client.GetEventByKey(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var se *client.StatusError
		if errors.Is(err, client.ErrNotFound) || (errors.Is(err, client.ErrUnavailable) && !errors.As(err, &se)) {
			return nil, fmt.Errorf("load event %q: %w", key, err)
		}
		return nil, fmt.Errorf("load event %q: %w: %w", key, client.ErrNotFound, err)
	}
	return ev, nil
}

func (l *loader) LoadGuesses(ctx context.Context, eventID string) []models.Guess {
	gs, err := l.client.ListGuesses(ctx, eventID)
	if err != nil {
		l.log.Warn(ctx, "guesses unavailable, starting empty", "event_id", eventID, "error", err)
		return []models.Guess{}
	}
	return gs
}
