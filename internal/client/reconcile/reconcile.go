// Package reconcile holds the authoritative set of guesses for one event.
//
// A Set maps a key to the latest Guess seen for it. The key is the invitee id;
// guesses from older snapshots that carry no invitee id are keyed by a hash
// of their content instead. Arrival order is kept only so that rendering is
// stable; it has no bearing on which value wins, which is always the last
// one applied.
//
// An identified guess whose content matches an anonymous entry takes over
// that entry, so one guess is never listed twice.
//
// A Set is not safe for concurrent use. The session actor owns it.
package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// KeySource tells how a guess key was derived.
type KeySource string

const (
	KeyFromInvitee   KeySource = "invitee_id"
	KeyFromComposite KeySource = "composite"
)

// DeriveKey returns the dedup key of g and the source used. The composite is
// a hex-encoded SHA-256 of (name, color, date, weight).
func DeriveKey(g models.Guess) (key string, src KeySource) {
	if g.InviteeID != "" {
		return g.InviteeID, KeyFromInvitee
	}
	composite := fmt.Sprintf("%s|%s|%s|%g", g.DisplayName, g.ColorHex, g.GuessedDate.Format(timex.LocalLayout), g.GuessedWeightKg)
	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:]), KeyFromComposite
}

type Set struct {
	byKey map[string]models.Guess
	order []string
}

func New() *Set {
	return &Set{byKey: make(map[string]models.Guess)}
}

// Seed replaces the whole state with snapshot. Later duplicates win but keep
// the position of the first occurrence.
func (s *Set) Seed(snapshot []models.Guess) {
	s.byKey = make(map[string]models.Guess, len(snapshot))
	s.order = s.order[:0]
	for _, g := range snapshot {
		s.Upsert(g)
	}
}

// Upsert stores g, replacing any entry with the same key in place. An
// identified g also replaces an anonymous entry with the same content,
// keeping its position. It reports whether the set changed.
func (s *Set) Upsert(g models.Guess) bool {
	key, src := DeriveKey(g)
	old, ok := s.byKey[key]
	if ok && old == g {
		return false
	}
	if !ok && src == KeyFromInvitee && s.adopt(key, g) {
		return true
	}
	if !ok {
		s.order = append(s.order, key)
	}
	s.byKey[key] = g
	return true
}

// adopt re-keys the anonymous twin of g under key.
func (s *Set) adopt(key string, g models.Guess) bool {
	anon := g
	anon.InviteeID = ""
	composite, _ := DeriveKey(anon)
	if _, ok := s.byKey[composite]; !ok {
		return false
	}
	delete(s.byKey, composite)
	if i := slices.Index(s.order, composite); i >= 0 {
		s.order[i] = key
	}
	s.byKey[key] = g
	return true
}

// Remove drops the guess of inviteeID. Absent ids are a no-op.
func (s *Set) Remove(inviteeID string) bool {
	if _, ok := s.byKey[inviteeID]; !ok {
		return false
	}
	delete(s.byKey, inviteeID)
	if i := slices.Index(s.order, inviteeID); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

// Apply folds a guess or guess_deleted update into the set; other kinds are
// ignored. It reports whether the set changed.
func (s *Set) Apply(u models.LiveUpdate) bool {
	switch u.Kind {
	case models.KindGuess:
		if u.Guess == nil {
			return false
		}
		return s.Upsert(*u.Guess)
	case models.KindGuessDeleted:
		return s.Remove(u.DeletedInvitee)
	default:
		return false
	}
}

// Get returns the guess stored under inviteeID.
func (s *Set) Get(inviteeID string) (models.Guess, bool) {
	g, ok := s.byKey[inviteeID]
	return g, ok
}

func (s *Set) Len() int {
	return len(s.byKey)
}

// Snapshot copies the guesses in arrival order.
func (s *Set) Snapshot() []models.Guess {
	out := make([]models.Guess, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}
