package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/identity"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/validate"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_WithoutTokenFailsBeforeNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc, identity.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := svc.UpdateSettings(ctx, "E1", true)
	require.ErrorIs(t, err, ErrNotAdmin)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	_, err = svc.UpdateDescription(ctx, "E1", nil)
	require.ErrorIs(t, err, ErrNotAdmin)
	_, err = svc.SetAnswer(ctx, "E1", timex.MustLocal("2030-01-01"), 3)
	require.ErrorIs(t, err, ErrNotAdmin)
	require.ErrorIs(t, svc.DeleteGuess(ctx, "E1", "inv-1"), ErrNotAdmin)
	require.ErrorIs(t, svc.DeleteEvent(ctx, "E1"), ErrNotAdmin)

	assert.Empty(t, fc.Calls())
}

func TestAdmin_ForwardsStoredSecret(t *testing.T) {
	store := identity.NewMemoryStore()
	require.NoError(t, store.SetAdminToken(context.Background(), "E1", "sk"))
	fc := &fakeClient{EventRet: &models.Event{ID: "E1", AllowGuessEdits: true}}
	svc := NewAdminService(fc, store, nil)

	ev, err := svc.UpdateSettings(context.Background(), "E1", true)
	require.NoError(t, err)
	assert.True(t, ev.AllowGuessEdits)
	assert.Equal(t, "sk", fc.LastToken)

	require.NoError(t, svc.DeleteGuess(context.Background(), "E1", "inv-3"))
	assert.Equal(t, "inv-3", fc.LastInvitee)
}

func TestAdmin_RejectedSecretLeavesStateAlone(t *testing.T) {
	store := identity.NewMemoryStore()
	require.NoError(t, store.SetAdminToken(context.Background(), "E1", "stale"))
	fc := &fakeClient{AdminErr: client.ErrUnauthorized}
	svc := NewAdminService(fc, store, nil)

	_, err := svc.UpdateSettings(context.Background(), "E1", false)
	require.ErrorIs(t, err, client.ErrUnauthorized)

	tok, ok, _ := store.AdminToken(context.Background(), "E1")
	assert.True(t, ok)
	assert.Equal(t, "stale", tok)
}

func TestClaim_PersistsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()

	bad := &fakeClient{ClaimErr: client.ErrUnauthorized}
	_, err := NewAdminService(bad, store, nil).Claim(ctx, "E1", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	ok, _ := NewAdminService(bad, store, nil).IsAdmin(ctx, "E1")
	assert.False(t, ok)

	good := &fakeClient{ClaimRet: &models.Event{ID: "E1", EventKey: "k1"}}
	svc := NewAdminService(good, store, nil)
	_, err = svc.Claim(ctx, "E1", "  right ")
	require.NoError(t, err)
	assert.Equal(t, "right", good.LastToken)

	ok, err = svc.IsAdmin(ctx, "E1")
	require.NoError(t, err)
	assert.True(t, ok)

	events, err := svc.AdminEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []identity.AdminEvent{{ID: "E1", Key: "k1"}}, events, "the invite key is listed, not just the id")
}

func TestRememberEventKey_OnlyForAdministeredEvents(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()
	require.NoError(t, store.SetAdminToken(ctx, "E1", "sk"))
	svc := NewAdminService(&fakeClient{}, store, nil)

	require.NoError(t, svc.RememberEventKey(ctx, "E1", "k1"))
	require.NoError(t, svc.RememberEventKey(ctx, "E2", "k2"))
	require.NoError(t, svc.RememberEventKey(ctx, "E1", ""))

	events, err := svc.AdminEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []identity.AdminEvent{{ID: "E1", Key: "k1"}}, events)
}

func TestClaim_EmptySecretSkipsNetwork(t *testing.T) {
	fc := &fakeClient{}
	_, err := NewAdminService(fc, identity.NewMemoryStore(), nil).Claim(context.Background(), "E1", " ")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, fc.Calls())
}

func TestCreateEvent_StoresSecret(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()
	fc := &fakeClient{Created: &models.EventWithSecret{Event: models.Event{ID: "E9", EventKey: "key9"}, SecretKey: "sk9"}}
	svc := NewAdminService(fc, store, nil)

	ev, err := svc.CreateEvent(ctx, models.NewEvent{Title: "Baby", DueDate: timex.MustLocal("2030-01-01")})
	require.NoError(t, err)
	assert.Equal(t, "key9", ev.EventKey)

	tok, ok, _ := store.AdminToken(ctx, "E9")
	assert.True(t, ok)
	assert.Equal(t, "sk9", tok)

	events, err := svc.AdminEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []identity.AdminEvent{{ID: "E9", Key: "key9"}}, events)
}

func TestCreateEvent_InvalidSkipsNetwork(t *testing.T) {
	fc := &fakeClient{}
	_, err := NewAdminService(fc, identity.NewMemoryStore(), nil).CreateEvent(context.Background(), models.NewEvent{})
	require.ErrorIs(t, err, validate.ErrValidationFailed)
	assert.Empty(t, fc.Calls())
}

func TestDeleteEvent_ForgetsCredentials(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()
	require.NoError(t, store.SetAdminToken(ctx, "E1", "sk"))
	require.NoError(t, store.SetInviteeID(ctx, "E1", "inv-1"))
	fc := &fakeClient{}

	require.NoError(t, NewAdminService(fc, store, nil).DeleteEvent(ctx, "E1"))

	_, ok, _ := store.AdminToken(ctx, "E1")
	assert.False(t, ok)
	_, ok, _ = store.InviteeID(ctx, "E1")
	assert.False(t, ok)
}

func TestSetAnswer_ValidatesAndFillsEventID(t *testing.T) {
	ctx := context.Background()
	store := identity.NewMemoryStore()
	require.NoError(t, store.SetAdminToken(ctx, "E1", "sk"))
	fc := &fakeClient{AnswerRet: &models.EndedAnnouncement{BirthWeightKg: 3.1}}
	svc := NewAdminService(fc, store, nil)

	_, err := svc.SetAnswer(ctx, "E1", timex.MustLocal("2030-01-01"), 11)
	require.ErrorIs(t, err, validate.ErrValidationFailed)
	assert.Empty(t, fc.Calls())

	a, err := svc.SetAnswer(ctx, "E1", timex.MustLocal("2030-01-01T05:00:00"), 3.1)
	require.NoError(t, err)
	assert.Equal(t, "E1", a.EventID)
}
