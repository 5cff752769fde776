package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/identity"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/validate"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// AdminService runs privileged event actions with the locally stored admin
// secret. Calls that need a secret fail with ErrNotAdmin, without a request,
// when none is stored.
type AdminService interface {
	// CreateEvent creates an event and stores the returned secret.
	CreateEvent(ctx context.Context, req models.NewEvent) (*models.EventWithSecret, error)
	// Claim stores secret only after the server accepts it.
	Claim(ctx context.Context, eventID, secret string) (*models.Event, error)
	// DeleteEvent deletes the event and forgets its local credentials.
	DeleteEvent(ctx context.Context, eventID string) error
	SetAnswer(ctx context.Context, eventID string, birthDate timex.LocalTime, birthWeightKg float64) (*models.EndedAnnouncement, error)
	UpdateSettings(ctx context.Context, eventID string, allowGuessEdits bool) (*models.Event, error)
	UpdateDescription(ctx context.Context, eventID string, description *string) (*models.Event, error)
	DeleteGuess(ctx context.Context, eventID, inviteeID string) error
	IsAdmin(ctx context.Context, eventID string) (bool, error)
	// RememberEventKey records the invite key of an administered event, so
	// that AdminEvents can list it. Other events are left alone.
	RememberEventKey(ctx context.Context, eventID, key string) error
	AdminEvents(ctx context.Context) ([]identity.AdminEvent, error)
}

type adminService struct {
	client client.Client
	store  identity.Store
	log    logging.Logger
}

func NewAdminService(c client.Client, store identity.Store, log logging.Logger) AdminService {
	if log == nil {
		log = logging.Nop()
	}
	return &adminService{client: c, store: store, log: log}
}

func (s *adminService) secret(ctx context.Context, eventID string) (string, error) {
	tok, ok, err := s.store.AdminToken(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("read admin token: %w", err)
	}
	if !ok || tok == "" {
		return "", ErrNotAdmin
	}
	return tok, nil
}

func (s *adminService) CreateEvent(ctx context.Context, req models.NewEvent) (*models.EventWithSecret, error) {
	if err := validate.NewEvent(req); err != nil {
		return nil, err
	}
	ev, err := s.client.CreateEvent(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if err := s.store.SetAdminToken(ctx, ev.ID, ev.SecretKey); err != nil {
		return ev, fmt.Errorf("event %s created but its secret was not saved: %w", ev.ID, err)
	}
	if err := s.store.SetEventKey(ctx, ev.ID, ev.EventKey); err != nil {
		s.log.Warn(ctx, "invite key not saved", "event_id", ev.ID, "error", err)
	}
	s.log.Info(ctx, "event created", "event_id", ev.ID, "event_key", ev.EventKey)
	return ev, nil
}

func (s *adminService) Claim(ctx context.Context, eventID, secret string) (*models.Event, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("claim: empty secret: %w", client.ErrUnauthorized)
	}
	ev, err := s.client.ClaimEvent(ctx, eventID, secret)
	if err != nil {
		return nil, fmt.Errorf("claim: %w", err)
	}
	if err := s.store.SetAdminToken(ctx, eventID, secret); err != nil {
		return nil, fmt.Errorf("claim: save admin token: %w", err)
	}
	if ev != nil && ev.EventKey != "" {
		if err := s.store.SetEventKey(ctx, eventID, ev.EventKey); err != nil {
			s.log.Warn(ctx, "invite key not saved", "event_id", eventID, "error", err)
		}
	}
	s.log.Info(ctx, "event claimed", "event_id", eventID)
	return ev, nil
}

func (s *adminService) DeleteEvent(ctx context.Context, eventID string) error {
	tok, err := s.secret(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.client.DeleteEvent(ctx, eventID, tok); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if err := s.store.Forget(ctx, eventID); err != nil {
		s.log.Warn(ctx, "event deleted but local credentials remain", "event_id", eventID, "error", err)
	}
	return nil
}

func (s *adminService) SetAnswer(ctx context.Context, eventID string, birthDate timex.LocalTime, birthWeightKg float64) (*models.EndedAnnouncement, error) {
	tok, err := s.secret(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := validate.Answer(birthDate, birthWeightKg); err != nil {
		return nil, err
	}
	a, err := s.client.SetAnswer(ctx, eventID, tok, birthDate, birthWeightKg)
	if err != nil {
		return nil, fmt.Errorf("set answer: %w", err)
	}
	if a.EventID == "" {
		a.EventID = eventID
	}
	return a, nil
}

func (s *adminService) UpdateSettings(ctx context.Context, eventID string, allowGuessEdits bool) (*models.Event, error) {
	tok, err := s.secret(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ev, err := s.client.UpdateSettings(ctx, eventID, tok, allowGuessEdits)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	return ev, nil
}

func (s *adminService) UpdateDescription(ctx context.Context, eventID string, description *string) (*models.Event, error) {
	tok, err := s.secret(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ev, err := s.client.UpdateDescription(ctx, eventID, tok, description)
	if err != nil {
		return nil, fmt.Errorf("update description: %w", err)
	}
	return ev, nil
}

func (s *adminService) DeleteGuess(ctx context.Context, eventID, inviteeID string) error {
	tok, err := s.secret(ctx, eventID)
	if err != nil {
		return err
	}
	if err := s.client.DeleteGuess(ctx, eventID, inviteeID, tok); err != nil {
		return fmt.Errorf("delete guess: %w", err)
	}
	return nil
}

func (s *adminService) IsAdmin(ctx context.Context, eventID string) (bool, error) {
	_, ok, err := s.store.AdminToken(ctx, eventID)
	return ok, err
}

func (s *adminService) RememberEventKey(ctx context.Context, eventID, key string) error {
	if key == "" {
		return nil
	}
	if _, ok, err := s.store.AdminToken(ctx, eventID); err != nil || !ok {
		return err
	}
	return s.store.SetEventKey(ctx, eventID, key)
}

func (s *adminService) AdminEvents(ctx context.Context) ([]identity.AdminEvent, error) {
	return s.store.AdminEvents(ctx)
}
