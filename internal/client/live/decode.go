package live

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
)

type envelope struct {
	Type    string          `json:"type"`
	EventID string          `json:"event_id"`
	Data    json.RawMessage `json:"data"`
}

type guessPayload struct {
	EventID string        `json:"event_id"`
	Guess   *models.Guess `json:"guess"`
}

type deletedPayload struct {
	EventID   string `json:"event_id"`
	InviteeID string `json:"invitee_id"`
}

type settingsPayload struct {
	EventID         string `json:"event_id"`
	AllowGuessEdits *bool  `json:"allow_guess_edits"`
}

type descriptionPayload struct {
	EventID     string  `json:"event_id"`
	Description *string `json:"description"`
}

// Decode turns one stream message into a LiveUpdate. The update is always
// usable: anything Decode cannot interpret comes back as KindUnknown. err is
// non-nil only for a malformed message, never for an unrecognised type, and
// callers log it and carry on.
func Decode(b []byte) (u models.LiveUpdate, err error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return unknown(""), fmt.Errorf("decode envelope: %w", err)
	}

	u, err = decodeData(models.Kind(env.Type), env.Data)
	if err != nil {
		return unknown(env.Type), fmt.Errorf("decode %q payload: %w", env.Type, err)
	}
	u.RawType = env.Type
	if u.EventID == "" {
		u.EventID = env.EventID
	}
	return u, nil
}

func unknown(raw string) models.LiveUpdate {
	return models.LiveUpdate{Kind: models.KindUnknown, RawType: raw}
}

func decodeData(kind models.Kind, data json.RawMessage) (models.LiveUpdate, error) {
	switch kind {
	case models.KindGuess:
		var p guessPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return models.LiveUpdate{}, err
		}
		g := p.Guess
		if g == nil {
			g = &models.Guess{}
			if err := json.Unmarshal(data, g); err != nil {
				return models.LiveUpdate{}, err
			}
		}
		if g.InviteeID == "" && g.DisplayName == "" {
			return models.LiveUpdate{}, fmt.Errorf("guess without identity")
		}
		return models.LiveUpdate{Kind: kind, EventID: p.EventID, Guess: g}, nil

	case models.KindGuessDeleted:
		var p deletedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return models.LiveUpdate{}, err
		}
		if p.InviteeID == "" {
			return models.LiveUpdate{}, fmt.Errorf("missing invitee_id")
		}
		return models.LiveUpdate{Kind: kind, EventID: p.EventID, DeletedInvitee: p.InviteeID}, nil

	case models.KindEventSettings:
		var p settingsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return models.LiveUpdate{}, err
		}
		if p.AllowGuessEdits == nil {
			return models.LiveUpdate{}, fmt.Errorf("missing allow_guess_edits")
		}
		return models.LiveUpdate{Kind: kind, EventID: p.EventID, AllowGuessEdits: p.AllowGuessEdits}, nil

	case models.KindEventDescription:
		var p descriptionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return models.LiveUpdate{}, err
		}
		return models.LiveUpdate{Kind: kind, EventID: p.EventID, Description: p.Description}, nil

	case models.KindEventEnded:
		var p models.EndedAnnouncement
		if err := json.Unmarshal(data, &p); err != nil {
			return models.LiveUpdate{}, err
		}
		if p.BirthDate.IsZero() {
			return models.LiveUpdate{}, fmt.Errorf("missing birth_date")
		}
		return models.LiveUpdate{Kind: kind, EventID: p.EventID, Ended: &p}, nil

	default:
		return unknown(string(kind)), nil
	}
}
