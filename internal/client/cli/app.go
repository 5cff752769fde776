package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/client/session"
	"github.com/dmitrijs2005/babyguessr/internal/logging"
)

// Services is what the App needs from the rest of the client.
type Services struct {
	Loader  services.Loader
	Admin   services.AdminService
	Guesses services.GuessService
	// Live may be nil; sessions then only see their own writes.
	Live session.LiveRunner
	Log  logging.Logger
}

type App struct {
	viewer *session.Viewer
	admin  services.AdminService
	log    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp builds an App reading commands and prompt answers from in and
// writing everything user-facing to out.
func NewApp(svc Services, in io.Reader, out io.Writer) *App {
	if svc.Log == nil {
		svc.Log = logging.Nop()
	}
	a := &App{
		admin:  svc.Admin,
		log:    svc.Log,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}
	a.viewer = session.NewViewer(session.Deps{
		Loader:    svc.Loader,
		Admin:     svc.Admin,
		Guesses:   svc.Guesses,
		Live:      svc.Live,
		Navigator: a,
		Log:       svc.Log,
		OnChange:  a.onChange,
	})
	return a
}

// Run starts the REPL and closes any open session when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.viewer.Close(); err != nil {
			a.log.Warn(ctx, "closing session", "error", err)
		}
	}()

	a.println("Welcome to babyguessr (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Home is called when the open event disappears. It runs on a session
// goroutine and only prints.
func (a *App) Home() {
	a.println("The event is no longer available. Back to the start; use 'open <key>' or 'create'.")
}

func (a *App) onChange(v session.View) {
	a.log.Debug(context.Background(), "view updated",
		"session", v.SessionID, "version", v.Version, "guesses", len(v.Guesses))
}

func (a *App) status() string {
	s := a.viewer.Current()
	if s == nil {
		return ""
	}
	v := s.View()
	tag := v.Key
	if v.IsAdmin {
		tag += " admin"
	}
	if v.Event != nil && v.Event.Ended() {
		tag += " ended"
	}
	return fmt.Sprintf("(%s)", tag)
}

// current returns the open session or reports that none is open.
func (a *App) current() (*session.Session, bool) {
	s := a.viewer.Current()
	if s == nil {
		a.println("No event is open. Use 'open <key>' first.")
		return nil, false
	}
	return s, true
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
