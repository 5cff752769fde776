package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// fakeClient implements client.Client for service tests. Every call is
// recorded by method name; results are preset per method.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	Event    *models.Event
	EventErr error

	Guesses    []models.Guess
	GuessesErr error

	Created   *models.EventWithSecret
	CreateErr error

	SubmitRet *models.SubmitResult
	SubmitErr error
	LastSub   models.GuessSubmission

	UpdateRet   *models.Guess
	UpdateErr   error
	LastToken   string
	LastInvitee string

	ClaimRet *models.Event
	ClaimErr error

	EventRet *models.Event
	AdminErr error

	AnswerRet *models.EndedAnnouncement
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Ping(ctx context.Context) error {
	f.record("Ping")
	return nil
}

func (f *fakeClient) GetEventByKey(ctx context.Context, key string) (*models.Event, error) {
	f.record("GetEventByKey")
	if f.EventErr != nil {
		return nil, f.EventErr
	}
	return f.Event.Clone(), nil
}

func (f *fakeClient) ListGuesses(ctx context.Context, eventID string) ([]models.Guess, error) {
	f.record("ListGuesses")
	if f.GuessesErr != nil {
		return nil, f.GuessesErr
	}
	return append([]models.Guess(nil), f.Guesses...), nil
}

func (f *fakeClient) CreateEvent(ctx context.Context, req models.NewEvent) (*models.EventWithSecret, error) {
	f.record("CreateEvent")
	return f.Created, f.CreateErr
}

func (f *fakeClient) SubmitGuess(ctx context.Context, eventID string, sub models.GuessSubmission) (*models.SubmitResult, error) {
	f.record("SubmitGuess")
	f.LastSub = sub
	return f.SubmitRet, f.SubmitErr
}

func (f *fakeClient) UpdateGuess(ctx context.Context, eventID, inviteeID, token string, sub models.GuessSubmission) (*models.Guess, error) {
	f.record("UpdateGuess")
	f.LastSub, f.LastInvitee, f.LastToken = sub, inviteeID, token
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteGuess(ctx context.Context, eventID, inviteeID, secret string) error {
	f.record("DeleteGuess")
	f.LastInvitee, f.LastToken = inviteeID, secret
	return f.AdminErr
}

func (f *fakeClient) ClaimEvent(ctx context.Context, eventID, secret string) (*models.Event, error) {
	f.record("ClaimEvent")
	f.LastToken = secret
	return f.ClaimRet, f.ClaimErr
}

func (f *fakeClient) UpdateDescription(ctx context.Context, eventID, secret string, description *string) (*models.Event, error) {
	f.record("UpdateDescription")
	f.LastToken = secret
	return f.EventRet, f.AdminErr
}

func (f *fakeClient) UpdateSettings(ctx context.Context, eventID, secret string, allowGuessEdits bool) (*models.Event, error) {
	f.record("UpdateSettings")
	f.LastToken = secret
	return f.EventRet, f.AdminErr
}

func (f *fakeClient) SetAnswer(ctx context.Context, eventID, secret string, birthDate timex.LocalTime, birthWeightKg float64) (*models.EndedAnnouncement, error) {
	f.record("SetAnswer")
	f.LastToken = secret
	return f.AnswerRet, f.AdminErr
}

func (f *fakeClient) DeleteEvent(ctx context.Context, eventID, secret string) error {
	f.record("DeleteEvent")
	f.LastToken = secret
	return f.AdminErr
}

func (f *fakeClient) LiveURL(eventKey string) string {
	return "http://fake/api/events/live?event_key=" + eventKey
}
