package models

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// Guess is one participant's wager. InviteeID is the identity used for
// dedup and updates; older snapshots may leave it empty.
type Guess struct {
	InviteeID       string          `json:"invitee_id,omitempty"`
	DisplayName     string          `json:"display_name"`
	ColorHex        string          `json:"color_hex"`
	GuessedDate     timex.LocalTime `json:"guessed_date"`
	GuessedWeightKg float64         `json:"guessed_weight_kg"`
}

func (g Guess) String() string {
	return fmt.Sprintf("%s %.2fkg on %s", g.DisplayName, g.GuessedWeightKg, g.GuessedDate.Format(timex.DateLayout))
}

// GuessSubmission is the body of both create and update requests.
type GuessSubmission struct {
	DisplayName     string          `json:"display_name"`
	ColorHex        string          `json:"color_hex"`
	GuessedDate     timex.LocalTime `json:"guessed_date"`
	GuessedWeightKg float64         `json:"guessed_weight_kg"`
}

// Invitee is the participant row created alongside a guess.
type Invitee struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	DisplayName string `json:"display_name"`
	ColorHex    string `json:"color_hex"`
}

// SubmittedGuess is the guess row created by a submission.
type SubmittedGuess struct {
	ID              string          `json:"id"`
	InviteeID       string          `json:"invitee_id"`
	GuessedDate     timex.LocalTime `json:"guessed_date"`
	GuessedWeightKg float64         `json:"guessed_weight_kg"`
}

// SubmitResult decodes the create-guess response, which the server encodes
// as a two element array: [invitee, guess].
type SubmitResult struct {
	Invitee Invitee
	Guess   SubmittedGuess
}

func (r *SubmitResult) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("submit result: want 2 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &r.Invitee); err != nil {
		return fmt.Errorf("submit result invitee: %w", err)
	}
	if err := json.Unmarshal(parts[1], &r.Guess); err != nil {
		return fmt.Errorf("submit result guess: %w", err)
	}
	return nil
}

// AsGuess merges both halves into the shape used everywhere else.
func (r SubmitResult) AsGuess() Guess {
	id := r.Invitee.ID
	if id == "" {
		id = r.Guess.InviteeID
	}
	return Guess{
		InviteeID:       id,
		DisplayName:     r.Invitee.DisplayName,
		ColorHex:        r.Invitee.ColorHex,
		GuessedDate:     r.Guess.GuessedDate,
		GuessedWeightKg: r.Guess.GuessedWeightKg,
	}
}
