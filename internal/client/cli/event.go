package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
)

func (a *App) hasSession() bool {
	return a.viewer.Current() != nil
}

// fail reports err to the user and returns it unchanged.
func (a *App) fail(err error) error {
	a.println(describeErr(err))
	return err
}

// Open opens the event behind an invite key, closing the current one.
func (a *App) Open(ctx context.Context, args []string) error {
	key := ""
	if len(args) > 0 {
		key = args[0]
	} else {
		var err error
		if key, err = GetSimpleText(a.reader, "Enter invite key", a.out); err != nil {
			return a.fail(err)
		}
	}
	if key == "" {
		a.println("Usage: open <key>")
		return nil
	}

	s, err := a.viewer.Open(ctx, key)
	if err != nil {
		// Home already printed the not-found notice.
		if errors.Is(err, client.ErrNotFound) {
			return err
		}
		return a.fail(err)
	}
	renderEvent(a.out, s.View(), a.now())
	return nil
}

// Create walks through the new event form, stores the admin secret on this
// device and opens the event.
func (a *App) Create(ctx context.Context, _ []string) error {
	req, err := a.inputNewEvent()
	if err != nil {
		return a.fail(err)
	}

	created, err := a.admin.CreateEvent(ctx, req)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Created %q.\nInvite key: %s\nAdmin secret: %s\n", created.Title, created.EventKey, created.SecretKey)
	a.println("The secret is saved on this device. Keep a copy to manage the event from elsewhere.")

	return a.Open(ctx, []string{created.EventKey})
}

func (a *App) inputNewEvent() (models.NewEvent, error) {
	var req models.NewEvent

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return req, err
	}
	req.Title = title

	desc, err := GetMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return req, err
	}
	if desc != "" {
		req.Description = &desc
	}

	due, err := GetDate(a.reader, "Due date", false, a.out)
	if err != nil {
		return req, err
	}
	req.DueDate = due.Noon()

	if req.GuessCloseDate, err = GetDate(a.reader, "Guessing closes on, empty for the due date", true, a.out); err != nil {
		return req, err
	}
	if req.MinWeightKg, err = GetFloat(a.reader, "Minimum weight kg (optional)", true, a.out); err != nil {
		return req, err
	}
	if req.MaxWeightKg, err = GetFloat(a.reader, "Maximum weight kg (optional)", true, a.out); err != nil {
		return req, err
	}
	if req.AllowGuessEdits, err = GetYesNo(a.reader, "Allow guess edits?", a.out); err != nil {
		return req, err
	}
	return req, nil
}

func (a *App) Show(_ context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	renderEvent(a.out, s.View(), a.now())
	return nil
}

func (a *App) List(_ context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	renderGuesses(a.out, s.View())
	return nil
}

func (a *App) Chart(_ context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	renderChart(a.out, s.View().Points)
	return nil
}

func (a *App) Leaders(_ context.Context, _ []string) error {
	s, ok := a.current()
	if !ok {
		return nil
	}
	renderLeaderboard(a.out, s.View().Leaderboard)
	return nil
}

// Events lists the events this device holds an admin secret for, by the
// invite key that open takes.
func (a *App) Events(ctx context.Context, _ []string) error {
	events, err := a.admin.AdminEvents(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(events) == 0 {
		a.println("This device is not an admin of any event.")
		return nil
	}
	a.println("Admin of events (open <key>):")
	for _, ev := range events {
		if ev.Key == "" {
			a.println(fmt.Sprintf("  ?  (event %s; invite key not recorded, open it once by key)", ev.ID))
			continue
		}
		a.println(fmt.Sprintf("  %s  (event %s)", ev.Key, ev.ID))
	}
	return nil
}

// CloseEvent leaves the open event.
func (a *App) CloseEvent(ctx context.Context, _ []string) error {
	if !a.hasSession() {
		a.println("No event is open.")
		return nil
	}
	if err := a.viewer.Close(); err != nil {
		a.log.Warn(ctx, "closing session", "error", err)
	}
	a.println("Closed.")
	return nil
}

func usage(a *App, line string) error {
	a.println("Usage: " + line)
	return fmt.Errorf("usage: %s", line)
}
