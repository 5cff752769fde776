// Package identity persists the two per-event credentials a device holds:
// the admin secret of events it created or claimed, and the invitee id of
// the guess it submitted. Values are stored verbatim and never validated;
// the server decides what they are worth.
//
// Next to an admin secret the store keeps the event's invite key, which is
// what a user types to open the event again.
package identity

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/babyguessr/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/babyguessr/internal/dbx"
)

const (
	adminKeyPrefix    = "event_admin_key_"
	inviteeKeyPrefix  = "guess_token_"
	eventKeyKeyPrefix = "event_key_"
)

// AdminKey is the storage key of the admin secret for eventID.
func AdminKey(eventID string) string { return adminKeyPrefix + eventID }

// InviteeKey is the storage key of the participant token for eventID.
func InviteeKey(eventID string) string { return inviteeKeyPrefix + eventID }

// EventKeyKey is the storage key of the invite key for eventID.
func EventKeyKey(eventID string) string { return eventKeyKeyPrefix + eventID }

// AdminEvent is an event this device administers. Key is empty when the
// invite key was never recorded.
type AdminEvent struct {
	ID  string
	Key string
}

// Store is the local identity store. Absent values come back as ("", false, nil).
type Store interface {
	AdminToken(ctx context.Context, eventID string) (string, bool, error)
	SetAdminToken(ctx context.Context, eventID, secret string) error
	InviteeID(ctx context.Context, eventID string) (string, bool, error)
	SetInviteeID(ctx context.Context, eventID, inviteeID string) error
	SetEventKey(ctx context.Context, eventID, key string) error
	// Forget drops everything stored for eventID.
	Forget(ctx context.Context, eventID string) error
	// AdminEvents lists the events this device administers, sorted by id.
	AdminEvents(ctx context.Context) ([]AdminEvent, error)
}

// SQLiteStore keeps credentials in the metadata table.
type SQLiteStore struct {
	db   *sql.DB
	repo metadata.Repository
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: metadata.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) AdminToken(ctx context.Context, eventID string) (string, bool, error) {
	return s.repo.Get(ctx, AdminKey(eventID))
}

func (s *SQLiteStore) SetAdminToken(ctx context.Context, eventID, secret string) error {
	return s.repo.Set(ctx, AdminKey(eventID), secret)
}

func (s *SQLiteStore) InviteeID(ctx context.Context, eventID string) (string, bool, error) {
	return s.repo.Get(ctx, InviteeKey(eventID))
}

func (s *SQLiteStore) SetInviteeID(ctx context.Context, eventID, inviteeID string) error {
	return s.repo.Set(ctx, InviteeKey(eventID), inviteeID)
}

func (s *SQLiteStore) SetEventKey(ctx context.Context, eventID, key string) error {
	return s.repo.Set(ctx, EventKeyKey(eventID), key)
}

func (s *SQLiteStore) Forget(ctx context.Context, eventID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, AdminKey(eventID), InviteeKey(eventID), EventKeyKey(eventID))
	})
	if err != nil {
		return fmt.Errorf("forget event %s: %w", eventID, err)
	}
	return nil
}

func (s *SQLiteStore) AdminEvents(ctx context.Context) ([]AdminEvent, error) {
	admins, err := s.repo.List(ctx, adminKeyPrefix)
	if err != nil {
		return nil, err
	}
	keys, err := s.repo.List(ctx, eventKeyKeyPrefix)
	if err != nil {
		return nil, err
	}
	return adminEvents(admins, keys), nil
}

// adminEvents joins admin secrets with invite keys by event id.
func adminEvents(admins, keys map[string]string) []AdminEvent {
	out := make([]AdminEvent, 0, len(admins))
	for k := range admins {
		id, ok := strings.CutPrefix(k, adminKeyPrefix)
		if !ok {
			continue
		}
		out = append(out, AdminEvent{ID: id, Key: keys[EventKeyKey(id)]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *MemoryStore) set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryStore) AdminToken(_ context.Context, eventID string) (string, bool, error) {
	return s.get(AdminKey(eventID))
}

func (s *MemoryStore) SetAdminToken(_ context.Context, eventID, secret string) error {
	return s.set(AdminKey(eventID), secret)
}

func (s *MemoryStore) InviteeID(_ context.Context, eventID string) (string, bool, error) {
	return s.get(InviteeKey(eventID))
}

func (s *MemoryStore) SetInviteeID(_ context.Context, eventID, inviteeID string) error {
	return s.set(InviteeKey(eventID), inviteeID)
}

func (s *MemoryStore) SetEventKey(_ context.Context, eventID, key string) error {
	return s.set(EventKeyKey(eventID), key)
}

func (s *MemoryStore) Forget(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, AdminKey(eventID))
	delete(s.m, InviteeKey(eventID))
	delete(s.m, EventKeyKey(eventID))
	return nil
}

func (s *MemoryStore) AdminEvents(_ context.Context) ([]AdminEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return adminEvents(s.m, s.m), nil
}
