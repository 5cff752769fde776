package cli

import (
	"context"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
)

// Guess collects and submits a new guess for the open event.
func (a *App) Guess(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	if _, mine := s.View().MyGuess(); mine {
		a.println("This device already has a guess here; use 'edit' to change it.")
		return nil
	}

	sub, err := a.inputGuess(models.Guess{})
	if err != nil {
		return a.fail(err)
	}

	g, err := s.SubmitGuess(ctx, sub)
	if err != nil && g.InviteeID == "" {
		return a.fail(err)
	}
	a.printf("Submitted: %s\n", g)
	if err != nil {
		// accepted by the server but not remembered locally
		a.println("Warning: this device could not remember the guess, so it cannot be edited later.")
		a.log.Warn(ctx, "persisting guess token", "error", err)
	}
	return nil
}

// Edit changes this device's guess when the event allows it.
func (a *App) Edit(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	cur, mine := s.View().MyGuess()
	if !mine {
		a.println("This device has no guess on this event.")
		return nil
	}
	can, err := s.CanEdit(ctx, cur.InviteeID)
	if err != nil {
		return a.fail(err)
	}
	if !can {
		a.println("Editing is not allowed for this event right now.")
		return nil
	}

	sub, err := a.inputGuess(cur)
	if err != nil {
		return a.fail(err)
	}
	g, err := s.EditGuess(ctx, cur.InviteeID, sub)
	if err != nil {
		return a.fail(err)
	}
	a.printf("Updated: %s\n", g)
	return nil
}

// inputGuess prompts for every guess field. For edits, an empty answer keeps
// the value from prev.
func (a *App) inputGuess(prev models.Guess) (models.GuessSubmission, error) {
	sub := models.GuessSubmission{
		DisplayName:     prev.DisplayName,
		ColorHex:        prev.ColorHex,
		GuessedDate:     prev.GuessedDate,
		GuessedWeightKg: prev.GuessedWeightKg,
	}
	editing := prev.InviteeID != ""

	name, err := GetSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return sub, err
	}
	if name != "" || !editing {
		sub.DisplayName = name
	}

	color, err := GetSimpleText(a.reader, "Color (#rrggbb)", a.out)
	if err != nil {
		return sub, err
	}
	if color != "" || !editing {
		sub.ColorHex = color
	}

	date, err := GetDate(a.reader, "Birth date guess", editing, a.out)
	if err != nil {
		return sub, err
	}
	if date != nil {
		sub.GuessedDate = *date
	}

	kg, err := GetFloat(a.reader, "Weight guess (kg)", editing, a.out)
	if err != nil {
		return sub, err
	}
	if kg != nil {
		sub.GuessedWeightKg = *kg
	}
	return sub, nil
}
