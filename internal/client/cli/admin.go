package cli

import (
	"context"
	"strings"
)

// Claim proves ownership of the open event with its admin secret.
func (a *App) Claim(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	secret, err := GetSecret(a.reader, a.out)
	if err != nil {
		return a.fail(err)
	}
	if err := s.Claim(ctx, secret); err != nil {
		return a.fail(err)
	}
	a.println("Claimed. This device is now an admin of the event.")
	return nil
}

// Answer records the birth date and weight, ending the event.
func (a *App) Answer(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	date, err := GetDate(a.reader, "Birth date", false, a.out)
	if err != nil {
		return a.fail(err)
	}
	kg, err := GetFloat(a.reader, "Birth weight (kg)", false, a.out)
	if err != nil {
		return a.fail(err)
	}
	if err := s.SetAnswer(ctx, *date, *kg); err != nil {
		return a.fail(err)
	}
	a.println("The event has ended. Use 'leaders' to see who came closest.")
	return nil
}

func (a *App) Settings(ctx context.Context, args []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		return usage(a, "settings on|off")
	}
	allow := args[0] == "on"
	if err := s.UpdateSettings(ctx, allow); err != nil {
		return a.fail(err)
	}
	if allow {
		a.println("Guess edits are now allowed.")
	} else {
		a.println("Guess edits are now disabled.")
	}
	return nil
}

// Describe replaces the description; an empty text clears it.
func (a *App) Describe(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	text, err := GetMultiline(a.reader, "New description, empty to clear", a.out)
	if err != nil {
		return a.fail(err)
	}
	var desc *string
	if text != "" {
		desc = &text
	}
	if err := s.UpdateDescription(ctx, desc); err != nil {
		return a.fail(err)
	}
	a.println("Description updated.")
	return nil
}

func (a *App) DelGuess(ctx context.Context, args []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	if len(args) != 1 {
		return usage(a, "delguess <invitee id>")
	}
	if err := s.DeleteGuess(ctx, args[0]); err != nil {
		return a.fail(err)
	}
	a.println("Guess deleted.")
	return nil
}

// Delete removes the open event after confirmation.
func (a *App) Delete(ctx context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	answer, err := GetSimpleText(a.reader, "Type the invite key to delete this event for everyone", a.out)
	if err != nil {
		return a.fail(err)
	}
	if strings.TrimSpace(answer) != s.Key() {
		a.println("Not deleted.")
		return nil
	}
	if err := s.DeleteEvent(ctx); err != nil {
		return a.fail(err)
	}
	return nil
}
