package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/identity"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/validate"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
)

// GuessService submits and edits the device's own guess. The returned Guess
// is always the server's echo, never a locally assembled one.
type GuessService interface {
	// Submit validates, posts, and stores the new invitee id as this
	// device's participant token.
	Submit(ctx context.Context, ev *models.Event, sub models.GuessSubmission) (models.Guess, error)
	// Edit replaces the content of an existing guess. It fails with
	// ErrEditNotPermitted, without a request, unless CanEdit holds.
	Edit(ctx context.Context, ev *models.Event, current models.Guess, sub models.GuessSubmission) (models.Guess, error)
	CanEdit(ctx context.Context, ev *models.Event, g models.Guess) (bool, error)
	MyInviteeID(ctx context.Context, eventID string) (string, bool, error)
}

type guessService struct {
	client client.Client
	store  identity.Store
	log    logging.Logger
	now    func() time.Time
}

// NewGuessService builds a GuessService. now may be nil for time.Now.
func NewGuessService(c client.Client, store identity.Store, log logging.Logger, now func() time.Time) GuessService {
	if log == nil {
		log = logging.Nop()
	}
	if now == nil {
		now = time.Now
	}
	return &guessService{client: c, store: store, log: log, now: now}
}

// normalize pins the guessed date to midday, as every client does.
func normalize(sub models.GuessSubmission) models.GuessSubmission {
	sub.GuessedDate = sub.GuessedDate.Noon()
	return sub
}

func (s *guessService) Submit(ctx context.Context, ev *models.Event, sub models.GuessSubmission) (models.Guess, error) {
	if ev == nil {
		return models.Guess{}, fmt.Errorf("submit guess: no event loaded: %w", client.ErrNotFound)
	}
	sub = normalize(sub)
	if err := validate.Guess(ev, sub, s.now()); err != nil {
		return models.Guess{}, err
	}

	res, err := s.client.SubmitGuess(ctx, ev.ID, sub)
	if err != nil {
		return models.Guess{}, fmt.Errorf("submit guess: %w", err)
	}
	g := res.AsGuess()

	if err := s.store.SetInviteeID(ctx, ev.ID, g.InviteeID); err != nil {
		s.log.Error(ctx, "guess accepted but participant token not saved", "event_id", ev.ID, "invitee_id", g.InviteeID, "error", err)
		return g, fmt.Errorf("save participant token: %w", err)
	}
	s.log.Info(ctx, "guess submitted", "event_id", ev.ID, "invitee_id", g.InviteeID)
	return g, nil
}

func (s *guessService) CanEdit(ctx context.Context, ev *models.Event, g models.Guess) (bool, error) {
	if ev == nil || !ev.AllowGuessEdits || !ev.GuessingOpen(s.now()) {
		return false, nil
	}
	mine, ok, err := s.store.InviteeID(ctx, ev.ID)
	if err != nil {
		return false, fmt.Errorf("read participant token: %w", err)
	}
	return ok && mine != "" && mine == g.InviteeID, nil
}

func (s *guessService) Edit(ctx context.Context, ev *models.Event, current models.Guess, sub models.GuessSubmission) (models.Guess, error) {
	ok, err := s.CanEdit(ctx, ev, current)
	if err != nil {
		return models.Guess{}, err
	}
	if !ok {
		return models.Guess{}, ErrEditNotPermitted
	}

	sub = normalize(sub)
	if err := validate.Guess(ev, sub, s.now()); err != nil {
		return models.Guess{}, err
	}

	g, err := s.client.UpdateGuess(ctx, ev.ID, current.InviteeID, current.InviteeID, sub)
	if err != nil {
		return models.Guess{}, fmt.Errorf("edit guess: %w", err)
	}
	if g.InviteeID == "" {
		g.InviteeID = current.InviteeID
	}
	return *g, nil
}

func (s *guessService) MyInviteeID(ctx context.Context, eventID string) (string, bool, error) {
	return s.store.InviteeID(ctx, eventID)
}
