package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// Actions call the services with the current event and fold the server's
// response back into the session. A failed call leaves the state untouched.

func (s *Session) current() (*models.Event, error) {
	if s.ctx.Err() != nil {
		return nil, ErrClosed
	}
	return s.View().Event, nil
}

// SubmitGuess posts a new guess and adds the server's echo to the set.
func (s *Session) SubmitGuess(ctx context.Context, sub models.GuessSubmission) (models.Guess, error) {
	ev, err := s.current()
	if err != nil {
		return models.Guess{}, err
	}
	g, err := s.deps.Guesses.Submit(ctx, ev, sub)
	if err != nil && g.InviteeID == "" {
		return models.Guess{}, err
	}
	_ = s.send(func() bool {
		s.myInvitee = g.InviteeID
		s.guesses.Upsert(g)
		return true
	})
	return g, err
}

// CanEdit reports whether the device may edit the guess of inviteeID.
func (s *Session) CanEdit(ctx context.Context, inviteeID string) (bool, error) {
	v := s.View()
	g, ok := v.Guess(inviteeID)
	if !ok {
		return false, nil
	}
	return s.deps.Guesses.CanEdit(ctx, v.Event, g)
}

// EditGuess replaces the content of the guess of inviteeID.
func (s *Session) EditGuess(ctx context.Context, inviteeID string, sub models.GuessSubmission) (models.Guess, error) {
	ev, err := s.current()
	if err != nil {
		return models.Guess{}, err
	}
	cur, ok := s.View().Guess(inviteeID)
	if !ok {
		return models.Guess{}, fmt.Errorf("guess %s: %w", inviteeID, services.ErrEditNotPermitted)
	}
	g, err := s.deps.Guesses.Edit(ctx, ev, cur, sub)
	if err != nil {
		return models.Guess{}, err
	}
	_ = s.send(func() bool { return s.guesses.Upsert(g) })
	return g, nil
}

// Claim tries secret as the admin key of the event.
func (s *Session) Claim(ctx context.Context, secret string) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	updated, err := s.deps.Admin.Claim(ctx, ev.ID, secret)
	if err != nil {
		return err
	}
	_ = s.send(func() bool {
		s.isAdmin = true
		s.replaceEvent(updated)
		return true
	})
	return nil
}

func (s *Session) SetAnswer(ctx context.Context, birthDate timex.LocalTime, birthWeightKg float64) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	a, err := s.deps.Admin.SetAnswer(ctx, ev.ID, birthDate, birthWeightKg)
	if err != nil {
		return err
	}
	_ = s.send(func() bool {
		s.event.ApplyEnded(*a)
		s.announced = a
		return true
	})
	return nil
}

func (s *Session) UpdateSettings(ctx context.Context, allowGuessEdits bool) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	updated, err := s.deps.Admin.UpdateSettings(ctx, ev.ID, allowGuessEdits)
	if err != nil {
		return err
	}
	_ = s.send(func() bool {
		if !s.replaceEvent(updated) {
			s.event.AllowGuessEdits = allowGuessEdits
		}
		return true
	})
	return nil
}

func (s *Session) UpdateDescription(ctx context.Context, description *string) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	updated, err := s.deps.Admin.UpdateDescription(ctx, ev.ID, description)
	if err != nil {
		return err
	}
	_ = s.send(func() bool {
		if !s.replaceEvent(updated) {
			s.event.Description = description
		}
		return true
	})
	return nil
}

func (s *Session) DeleteGuess(ctx context.Context, inviteeID string) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	if err := s.deps.Admin.DeleteGuess(ctx, ev.ID, inviteeID); err != nil {
		return err
	}
	_ = s.send(func() bool { return s.guesses.Remove(inviteeID) })
	return nil
}

// DeleteEvent deletes the event and leaves it.
func (s *Session) DeleteEvent(ctx context.Context) error {
	ev, err := s.current()
	if err != nil {
		return err
	}
	if err := s.deps.Admin.DeleteEvent(ctx, ev.ID); err != nil {
		return err
	}
	s.goHome()
	return nil
}

// replaceEvent adopts a server copy of the event; it runs on the actor.
func (s *Session) replaceEvent(ev *models.Event) bool {
	if ev == nil || ev.ID != s.event.ID {
		return false
	}
	s.event = ev
	return true
}
