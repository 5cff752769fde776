package client

import (
	"context"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// Client is the REST surface of the event service.
type Client interface {
	Ping(ctx context.Context) error

	GetEventByKey(ctx context.Context, key string) (*models.Event, error)
	ListGuesses(ctx context.Context, eventID string) ([]models.Guess, error)
	CreateEvent(ctx context.Context, req models.NewEvent) (*models.EventWithSecret, error)

	SubmitGuess(ctx context.Context, eventID string, sub models.GuessSubmission) (*models.SubmitResult, error)
	UpdateGuess(ctx context.Context, eventID, inviteeID, token string, sub models.GuessSubmission) (*models.Guess, error)
	DeleteGuess(ctx context.Context, eventID, inviteeID, secret string) error

	ClaimEvent(ctx context.Context, eventID, secret string) (*models.Event, error)
	UpdateDescription(ctx context.Context, eventID, secret string, description *string) (*models.Event, error)
	UpdateSettings(ctx context.Context, eventID, secret string, allowGuessEdits bool) (*models.Event, error)
	SetAnswer(ctx context.Context, eventID, secret string, birthDate timex.LocalTime, birthWeightKg float64) (*models.EndedAnnouncement, error)
	DeleteEvent(ctx context.Context, eventID, secret string) error

	// LiveURL is the Server-Sent-Events endpoint for an invite key.
	LiveURL(eventKey string) string
}
