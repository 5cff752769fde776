package session

import "github.com/dmitrijs2005/babyguessr/internal/client/models"

// View is an immutable snapshot of a session. Slices and pointers in it are
// never written after publication.
type View struct {
	SessionID string
	Key       string
	// Version grows with every published change.
	Version uint64

	Event       *models.Event
	Guesses     []models.Guess
	Points      []models.ChartPoint
	Leaderboard models.Leaderboard

	IsAdmin     bool
	MyInviteeID string
}

// Guess finds a guess by invitee id.
func (v View) Guess(inviteeID string) (models.Guess, bool) {
	for _, g := range v.Guesses {
		if g.InviteeID == inviteeID {
			return g, true
		}
	}
	return models.Guess{}, false
}

// MyGuess is the guess submitted from this device, if it is still listed.
func (v View) MyGuess() (models.Guess, bool) {
	if v.MyInviteeID == "" {
		return models.Guess{}, false
	}
	return v.Guess(v.MyInviteeID)
}
