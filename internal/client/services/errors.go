// Package services contains application services for the babyguessr client:
// loading an event snapshot, submitting and editing guesses, and the admin
// actions. Every permission check here is a courtesy to the user; the server
// enforces the real rules.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
)

var (
	// ErrNotAdmin: no admin secret is stored for the event.
	ErrNotAdmin = fmt.Errorf("not an admin of this event: %w", client.ErrUnauthorized)
	// ErrEditNotPermitted: edits are off, guessing is closed, or the guess
	// belongs to someone else.
	ErrEditNotPermitted = errors.New("editing this guess is not permitted")
)
