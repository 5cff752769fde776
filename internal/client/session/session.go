// Package session owns the state of one viewed event.
//
// A Session runs a single actor goroutine that holds the event, the
// reconciled guesses, the outcome announcement and the device's roles.
// Snapshot seeding, live updates and the results of guess and admin calls all
// reach that state as messages on one unbuffered queue, so updates are
// applied strictly in the order they were sent. Readers never touch the actor
// state: they get an immutable View.
//
// Every message is sent under the session context. Once a session is closed
// (the user opened another event, or the event turned out to be gone) nothing
// more is applied, so late responses can never leak into another event.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/babyguessr/internal/client/chart"
	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/live"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/reconcile"
	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by calls on a session that has been closed.
var ErrClosed = errors.New("session closed")

// Navigator leaves the current event page. Home may run on a session
// goroutine, so it must not wait for that session to close.
type Navigator interface {
	Home()
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) Home() { f() }

// LiveRunner streams live updates for an invite key until ctx is done.
type LiveRunner interface {
	Run(ctx context.Context, eventKey string, h live.Handler) error
}

// Deps wires a Session. Live and OnChange may be nil.
type Deps struct {
	Loader    services.Loader
	Admin     services.AdminService
	Guesses   services.GuessService
	Live      LiveRunner
	Navigator Navigator
	Log       logging.Logger
	// OnChange is called from the actor goroutine after every change.
	OnChange func(View)
}

type Session struct {
	id   string
	key  string
	deps Deps
	log  logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
	inbox  chan func() bool

	view    atomic.Pointer[View]
	version uint64

	// set while a transport error episode is open
	episode  atomic.Bool
	homeOnce sync.Once

	closeOnce sync.Once
	closeErr  error

	// actor state
	event     *models.Event
	guesses   *reconcile.Set
	announced *models.EndedAnnouncement
	isAdmin   bool
	myInvitee string
}

// Open loads the event behind key and starts the session. When the event
// cannot be loaded the Navigator is sent home and nothing else is requested;
// the returned error then matches client.ErrNotFound.
func Open(ctx context.Context, key string, deps Deps) (*Session, error) {
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	id := uuid.NewString()
	log := deps.Log.With("session_id", id, "event_key", key)

	sctx, cancel := context.WithCancel(ctx)

	ev, err := deps.Loader.LoadEvent(sctx, key)
	if err != nil {
		cancel()
		if errors.Is(err, client.ErrNotFound) {
			log.Info(ctx, "event not found, leaving")
			if deps.Navigator != nil {
				deps.Navigator.Home()
			}
		}
		return nil, err
	}

	guesses := deps.Loader.LoadGuesses(sctx, ev.ID)
	isAdmin, err := deps.Admin.IsAdmin(sctx, ev.ID)
	if err != nil {
		log.Warn(ctx, "admin token unreadable", "error", err)
	}
	if isAdmin {
		inviteKey := ev.EventKey
		if inviteKey == "" {
			inviteKey = key
		}
		if err := deps.Admin.RememberEventKey(sctx, ev.ID, inviteKey); err != nil {
			log.Warn(ctx, "invite key not saved", "error", err)
		}
	}
	mine, _, err := deps.Guesses.MyInviteeID(sctx, ev.ID)
	if err != nil {
		log.Warn(ctx, "participant token unreadable", "error", err)
	}
	if err := sctx.Err(); err != nil {
		cancel()
		return nil, err
	}

	g, gctx := errgroup.WithContext(sctx)
	s := &Session{
		id:        id,
		key:       key,
		deps:      deps,
		log:       log,
		ctx:       gctx,
		cancel:    cancel,
		group:     g,
		inbox:     make(chan func() bool),
		event:     ev,
		guesses:   reconcile.New(),
		isAdmin:   isAdmin,
		myInvitee: mine,
	}
	s.guesses.Seed(guesses)
	s.publish()
	seeded := s.guesses.Len()

	// From here on only the actor touches the state.
	g.Go(s.loop)
	if deps.Live != nil {
		g.Go(func() error {
			return deps.Live.Run(gctx, key, liveHandler{s})
		})
	}

	log.Info(ctx, "session opened", "event_id", ev.ID, "guesses", seeded)
	return s, nil
}

func (s *Session) ID() string  { return s.id }
func (s *Session) Key() string { return s.key }

// Done is closed once the session stops.
func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

// View returns the latest published state.
func (s *Session) View() View { return *s.view.Load() }

// Close stops the actor and the live channel and waits for both.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		err := s.group.Wait()
		if err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = err
		}
		s.log.Debug(context.Background(), "session closed")
	})
	return s.closeErr
}

func (s *Session) loop() error {
	for {
		select {
		case <-s.ctx.Done():
			return nil
		case fn := <-s.inbox:
			if fn() {
				s.publish()
			}
		}
	}
}

// send hands fn to the actor. It gives up, and fn never runs, once the
// session is closed.
func (s *Session) send(fn func() bool) error {
	if s.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case <-s.ctx.Done():
		return ErrClosed
	case s.inbox <- fn:
		return nil
	}
}

// goHome leaves the event once; later calls are no-ops.
func (s *Session) goHome() {
	s.homeOnce.Do(func() {
		s.cancel()
		if s.deps.Navigator != nil {
			s.deps.Navigator.Home()
		}
	})
}

func (s *Session) publish() {
	s.version++
	snapshot := s.guesses.Snapshot()
	v := &View{
		SessionID:   s.id,
		Key:         s.key,
		Version:     s.version,
		Event:       s.event.Clone(),
		Guesses:     snapshot,
		Points:      chart.Project(snapshot),
		Leaderboard: services.Leaderboard(s.event, s.announced, snapshot),
		IsAdmin:     s.isAdmin,
		MyInviteeID: s.myInvitee,
	}
	s.view.Store(v)
	if s.deps.OnChange != nil {
		s.deps.OnChange(*v)
	}
}

// applyLive folds one stream update into the actor state.
func (s *Session) applyLive(u models.LiveUpdate) bool {
	if u.EventID != "" && u.EventID != s.event.ID {
		s.log.Debug(s.ctx, "update for another event ignored", "update_event_id", u.EventID, "kind", u.Kind)
		return false
	}

	switch u.Kind {
	case models.KindGuess, models.KindGuessDeleted:
		return s.guesses.Apply(u)
	case models.KindEventSettings:
		if u.AllowGuessEdits == nil || s.event.AllowGuessEdits == *u.AllowGuessEdits {
			return false
		}
		s.event.AllowGuessEdits = *u.AllowGuessEdits
		return true
	case models.KindEventDescription:
		s.event.Description = u.Description
		return true
	case models.KindEventEnded:
		if u.Ended == nil {
			return false
		}
		s.event.ApplyEnded(*u.Ended)
		s.announced = u.Ended
		return true
	default:
		return false
	}
}

// revalidate re-fetches the event once per transport error episode. Only a
// confirmed not-found leaves the page.
func (s *Session) revalidate(ctx context.Context, cause error) {
	if !s.episode.CompareAndSwap(false, true) {
		return
	}
	s.log.Info(ctx, "live channel interrupted, re-validating event", "error", cause)

	s.group.Go(func() error {
		ev, err := s.deps.Loader.LoadEvent(s.ctx, s.key)
		if s.ctx.Err() != nil {
			return nil
		}
		if err != nil {
			if errors.Is(err, client.ErrNotFound) {
				s.log.Info(ctx, "event is gone, leaving", "error", err)
				s.goHome()
				return nil
			}
			s.log.Warn(ctx, "re-validation failed", "error", err)
			return nil
		}
		_ = s.send(func() bool {
			if ev.ID != s.event.ID {
				return false
			}
			s.event = ev
			return true
		})
		return nil
	})
}

// liveHandler feeds the channel into the actor.
type liveHandler struct{ s *Session }

func (h liveHandler) OnConnect(ctx context.Context) {
	h.s.episode.Store(false)
}

func (h liveHandler) OnUpdate(ctx context.Context, u models.LiveUpdate) {
	h.s.episode.Store(false)
	if err := h.s.send(func() bool { return h.s.applyLive(u) }); err != nil {
		h.s.log.Debug(ctx, "update dropped", "kind", u.Kind, "error", err)
	}
}

func (h liveHandler) OnTransportError(ctx context.Context, err error) {
	h.s.revalidate(ctx, err)
}

func (s *Session) String() string {
	return fmt.Sprintf("session %s (%s)", s.id, s.key)
}
