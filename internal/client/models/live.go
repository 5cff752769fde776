package models

import "github.com/dmitrijs2005/babyguessr/internal/timex"

// Kind tags a LiveUpdate.
type Kind string

// Envelope tags understood by the client. Anything else decodes as
// KindUnknown.
const (
	KindGuess            Kind = "guess"
	KindGuessDeleted     Kind = "guess_deleted"
	KindEventSettings    Kind = "event_settings"
	KindEventDescription Kind = "event_description"
	KindEventEnded       Kind = "event_ended"
	KindUnknown          Kind = "unknown"
)

// LiveUpdate is one decoded envelope. Exactly one payload field is set,
// matching Kind; KindUnknown carries only RawType.
type LiveUpdate struct {
	Kind    Kind
	RawType string
	EventID string

	Guess           *Guess
	DeletedInvitee  string
	AllowGuessEdits *bool
	// Description is meaningful only for KindEventDescription; nil clears it.
	Description *string
	Ended       *EndedAnnouncement
}

// LeaderboardEntry is a guess ranked by distance from the outcome.
type LeaderboardEntry struct {
	Guess
	DeltaDays *float64 `json:"delta_days,omitempty"`
	DeltaKg   *float64 `json:"delta_kg,omitempty"`
}

// EndedAnnouncement is the answer response and the event_ended payload.
type EndedAnnouncement struct {
	EventID          string             `json:"event_id"`
	BirthDate        timex.LocalTime    `json:"birth_date"`
	BirthWeightKg    float64            `json:"birth_weight_kg"`
	EndedAt          *timex.LocalTime   `json:"ended_at,omitempty"`
	ClosestDateTop   []LeaderboardEntry `json:"closest_date_top"`
	ClosestWeightTop []LeaderboardEntry `json:"closest_weight_top"`
}

// Leaderboard is what gets displayed after an event ends.
type Leaderboard struct {
	ByDate   []LeaderboardEntry
	ByWeight []LeaderboardEntry
	// FromServer is false when the lists were recomputed locally.
	FromServer bool
}
