package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/identity"
	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer guards output written from session goroutines.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

const eventJSON = `{"id":"ev1","title":"Baby Smith","event_key":"k1","due_date":"2099-06-01T12:00:00","allow_guess_edits":true}`

type apiServer struct {
	mu        sync.Mutex
	submitted []map[string]any
}

func (s *apiServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events/by-key/{key}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("key") != "k1" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, eventJSON)
	})
	mux.HandleFunc("GET /api/events/ev1/guesses", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"invitee_id":"i1","display_name":"Ann","color_hex":"#ff0000","guessed_date":"2099-06-02T12:00:00","guessed_weight_kg":3.4}]`)
	})
	mux.HandleFunc("POST /api/events/ev1/guesses", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		s.mu.Lock()
		s.submitted = append(s.submitted, body)
		s.mu.Unlock()
		_, _ = io.WriteString(w, `[{"id":"i2","event_id":"ev1","display_name":"Bob","color_hex":"#00ff00"},`+
			`{"id":"g2","invitee_id":"i2","guessed_date":"2099-06-03T12:00:00","guessed_weight_kg":3.1}]`)
	})
	mux.HandleFunc("POST /api/events/ev1/claim", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, eventJSON)
	})
	return mux
}

func newTestApp(t *testing.T, input string) (*App, *syncBuffer, *identity.MemoryStore, *apiServer) {
	t.Helper()
	captureREPL(t)

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	api := &apiServer{}
	srv := httptest.NewServer(api.handler(t))
	t.Cleanup(srv.Close)

	log := logging.Nop()
	c, err := client.NewHTTPClient(srv.URL, 2*time.Second, log)
	require.NoError(t, err)

	store := identity.NewMemoryStore()
	out := &syncBuffer{}
	app := NewApp(Services{
		Loader:  services.NewLoader(c, log),
		Admin:   services.NewAdminService(c, store, log),
		Guesses: services.NewGuessService(c, store, log, time.Now),
		Log:     log,
	}, strings.NewReader(input), out)
	return app, out, store, api
}

func TestApp_OpenAndRender(t *testing.T) {
	app, out, _, _ := newTestApp(t, "open k1\nlist\nchart\nshow\nexit\n")

	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Baby Smith  [key k1]")
	assert.Contains(t, got, "1 guess")
	assert.Contains(t, got, "Ann")
	assert.Contains(t, got, "2099-06-02")
	assert.Contains(t, got, "Guessing open")
	assert.False(t, app.hasSession(), "Run closes the session on exit")
}

func TestApp_OpenUnknownKeyGoesHome(t *testing.T) {
	app, out, _, _ := newTestApp(t, "open nope\nlist\n")

	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "no longer available")
	assert.Contains(t, got, "No event is open")
}

func TestApp_SubmitGuessRemembersInvitee(t *testing.T) {
	app, out, store, api := newTestApp(t, "open k1\nguess\nBob\n#00ff00\n2099-06-03\n3.1\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Submitted: Bob 3.10kg on 2099-06-03")

	api.mu.Lock()
	require.Len(t, api.submitted, 1)
	assert.Equal(t, "2099-06-03T12:00:00", api.submitted[0]["guessed_date"])
	api.mu.Unlock()

	id, ok, err := store.InviteeID(context.Background(), "ev1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "i2", id)
}

func TestApp_InvalidGuessIsRejectedLocally(t *testing.T) {
	app, out, _, api := newTestApp(t, "open k1\nguess\nBob\nred\n2099-06-03\n3.1\n")

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Invalid input")
	api.mu.Lock()
	assert.Empty(t, api.submitted)
	api.mu.Unlock()
}

func TestApp_ClaimWithPipedSecret(t *testing.T) {
	app, out, store, _ := newTestApp(t, "open k1\nclaim\nbad\nclaim\ngood\nevents\n")

	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "The server rejected the credentials.")
	assert.Contains(t, got, "Claimed.")
	assert.Contains(t, got, "Admin of events (open <key>):\n  k1  (event ev1)")

	secret, ok, err := store.AdminToken(context.Background(), "ev1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "good", secret)
}

func TestApp_EventsListsInviteKeys(t *testing.T) {
	app, out, store, _ := newTestApp(t, "events\nopen k1\nevents\n")
	require.NoError(t, store.SetAdminToken(context.Background(), "ev1", "sk"))

	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "  ?  (event ev1; invite key not recorded, open it once by key)")
	assert.Contains(t, got, "  k1  (event ev1)")
}

func TestApp_AdminCommandsNeedSecret(t *testing.T) {
	app, out, _, _ := newTestApp(t, "open k1\nsettings maybe\nsettings off\ndelguess i1\n")

	app.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Usage: settings on|off")
	assert.Contains(t, got, "not an admin of the event")
}

func TestApp_CommandsWithoutSession(t *testing.T) {
	app, out, _, _ := newTestApp(t, "list\nchart\nclose\nevents\n")

	app.Run(context.Background())

	got := out.String()
	assert.Equal(t, 2, strings.Count(got, "No event is open. Use 'open <key>' first."))
	assert.Contains(t, got, "No event is open.")
	assert.Contains(t, got, "not an admin of any event")
}
