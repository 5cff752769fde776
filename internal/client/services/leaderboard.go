package services

import (
	"cmp"
	"math"
	"slices"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// LeaderboardSize is the length of a locally computed list.
const LeaderboardSize = 3

// Leaderboard picks what to show for an ended event. A non-empty server list
// wins; an empty or missing one is recomputed from guesses. It returns an
// empty board while the event has no outcome.
func Leaderboard(ev *models.Event, ann *models.EndedAnnouncement, guesses []models.Guess) models.Leaderboard {
	if ev == nil || ev.BirthDate == nil || ev.BirthWeightKg == nil {
		return models.Leaderboard{}
	}

	var byDate, byWeight []models.LeaderboardEntry
	if ann != nil {
		byDate, byWeight = ann.ClosestDateTop, ann.ClosestWeightTop
	}
	fromServer := len(byDate) > 0 && len(byWeight) > 0

	if len(byDate) == 0 || len(byWeight) == 0 {
		d, w := rank(guesses, *ev.BirthDate, *ev.BirthWeightKg)
		if len(byDate) == 0 {
			byDate = top(d)
		}
		if len(byWeight) == 0 {
			byWeight = top(w)
		}
	}

	return models.Leaderboard{ByDate: byDate, ByWeight: byWeight, FromServer: fromServer}
}

func top(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}

func rank(guesses []models.Guess, birth timex.LocalTime, birthKg float64) (byDate, byWeight []models.LeaderboardEntry) {
	byDate = make([]models.LeaderboardEntry, 0, len(guesses))
	for _, g := range guesses {
		dd := math.Abs(birth.Sub(g.GuessedDate.Time).Hours() / 24)
		dk := math.Abs(g.GuessedWeightKg - birthKg)
		byDate = append(byDate, models.LeaderboardEntry{Guess: g, DeltaDays: &dd, DeltaKg: &dk})
	}
	byWeight = slices.Clone(byDate)

	slices.SortStableFunc(byDate, func(a, b models.LeaderboardEntry) int {
		return cmp.Or(
			cmp.Compare(*a.DeltaDays, *b.DeltaDays),
			cmp.Compare(*a.DeltaKg, *b.DeltaKg),
			cmp.Compare(a.DisplayName, b.DisplayName),
			cmp.Compare(a.InviteeID, b.InviteeID),
		)
	})
	slices.SortStableFunc(byWeight, func(a, b models.LeaderboardEntry) int {
		return cmp.Or(
			cmp.Compare(*a.DeltaKg, *b.DeltaKg),
			cmp.Compare(*a.DeltaDays, *b.DeltaDays),
			cmp.Compare(a.DisplayName, b.DisplayName),
			cmp.Compare(a.InviteeID, b.InviteeID),
		)
	})
	return byDate, byWeight
}
