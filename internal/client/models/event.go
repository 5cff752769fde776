// Package models defines the client-side data model of an event, its guesses
// and the messages that arrive over the live channel.
package models

import (
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// Event is the root aggregate. Optional fields are nil when the server omits
// them or sends null.
type Event struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Description     *string          `json:"description,omitempty"`
	EventKey        string           `json:"event_key"`
	DueDate         *timex.LocalTime `json:"due_date,omitempty"`
	GuessCloseDate  *timex.LocalTime `json:"guess_close_date,omitempty"`
	MinWeightKg     *float64         `json:"min_weight_kg,omitempty"`
	MaxWeightKg     *float64         `json:"max_weight_kg,omitempty"`
	AllowGuessEdits bool             `json:"allow_guess_edits"`
	BirthDate       *timex.LocalTime `json:"birth_date,omitempty"`
	BirthWeightKg   *float64         `json:"birth_weight_kg,omitempty"`
	EndedAt         *timex.LocalTime `json:"ended_at,omitempty"`
	CreatedAt       *timex.LocalTime `json:"created_at,omitempty"`
}

// EventWithSecret is returned once, on creation. The secret never appears in
// any other response.
type EventWithSecret struct {
	Event
	SecretKey string `json:"secret_key"`
}

// NewEvent is the creation request.
type NewEvent struct {
	Title           string           `json:"title"`
	Description     *string          `json:"description,omitempty"`
	DueDate         timex.LocalTime  `json:"due_date"`
	GuessCloseDate  *timex.LocalTime `json:"guess_close_date,omitempty"`
	MinWeightKg     *float64         `json:"min_weight_kg,omitempty"`
	MaxWeightKg     *float64         `json:"max_weight_kg,omitempty"`
	AllowGuessEdits bool             `json:"allow_guess_edits"`
	TurnstileToken  string           `json:"turnstile_token"`
}

// Ended reports whether an outcome has been recorded.
func (e *Event) Ended() bool {
	return e.EndedAt != nil || e.BirthDate != nil
}

// ClosesAt is the moment guessing stops: the explicit close date, otherwise
// the due date. Nil means guessing never closes by time.
func (e *Event) ClosesAt() *timex.LocalTime {
	if e.GuessCloseDate != nil {
		return e.GuessCloseDate
	}
	return e.DueDate
}

// GuessingOpen reports whether new guesses or edits can still be accepted at
// now, which is read as a wall-clock time in the event's zone-less frame.
func (e *Event) GuessingOpen(now time.Time) bool {
	if e.Ended() {
		return false
	}
	if c := e.ClosesAt(); c != nil && timex.NewLocalTime(now).After(c.Time) {
		return false
	}
	return true
}

// Clone returns a deep copy so views can be shared across goroutines.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.Description = clonePtr(e.Description)
	c.DueDate = clonePtr(e.DueDate)
	c.GuessCloseDate = clonePtr(e.GuessCloseDate)
	c.MinWeightKg = clonePtr(e.MinWeightKg)
	c.MaxWeightKg = clonePtr(e.MaxWeightKg)
	c.BirthDate = clonePtr(e.BirthDate)
	c.BirthWeightKg = clonePtr(e.BirthWeightKg)
	c.EndedAt = clonePtr(e.EndedAt)
	c.CreatedAt = clonePtr(e.CreatedAt)
	return &c
}

// ApplyEnded folds an outcome announcement into the event. Guess edits are
// always switched off once the event has ended.
func (e *Event) ApplyEnded(a EndedAnnouncement) {
	bd := a.BirthDate
	bw := a.BirthWeightKg
	e.BirthDate = &bd
	e.BirthWeightKg = &bw
	e.EndedAt = clonePtr(a.EndedAt)
	e.AllowGuessEdits = false
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v; handy for optional fields in literals.
func Ptr[T any](v T) *T {
	return &v
}
