package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	open  bool
	calls []string
	args  map[string][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) hasSession() bool { return f.open }
func (f *fakeExec) Open(_ context.Context, a []string) error {
	f.open = true
	return f.rec("open", a)
}
func (f *fakeExec) Create(_ context.Context, a []string) error   { return f.rec("create", a) }
func (f *fakeExec) Show(_ context.Context, a []string) error     { return f.rec("show", a) }
func (f *fakeExec) List(_ context.Context, a []string) error     { return f.rec("list", a) }
func (f *fakeExec) Chart(_ context.Context, a []string) error    { return f.rec("chart", a) }
func (f *fakeExec) Leaders(_ context.Context, a []string) error  { return f.rec("leaders", a) }
func (f *fakeExec) Events(_ context.Context, a []string) error   { return f.rec("events", a) }
func (f *fakeExec) Guess(_ context.Context, a []string) error    { return f.rec("guess", a) }
func (f *fakeExec) Edit(_ context.Context, a []string) error     { return f.rec("edit", a) }
func (f *fakeExec) Claim(_ context.Context, a []string) error    { return f.rec("claim", a) }
func (f *fakeExec) Answer(_ context.Context, a []string) error   { return f.rec("answer", a) }
func (f *fakeExec) Settings(_ context.Context, a []string) error { return f.rec("settings", a) }
func (f *fakeExec) Describe(_ context.Context, a []string) error { return f.rec("describe", a) }
func (f *fakeExec) DelGuess(_ context.Context, a []string) error { return f.rec("delguess", a) }
func (f *fakeExec) Delete(_ context.Context, a []string) error   { return f.rec("delete", a) }
func (f *fakeExec) CloseEvent(_ context.Context, a []string) error {
	f.open = false
	return f.rec("close", a)
}

func captureREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, 0, len(a))
		for _, x := range a {
			if s, ok := x.(string); ok {
				parts = append(parts, s)
			}
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureREPL(t)

	input := strings.Join([]string{
		"open abc123",
		"",
		"l",
		"chart",
		"guess",
		"settings on",
		"delguess inv-1",
		"leaders",
		"close",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"open", "list", "chart", "guess", "settings", "delguess", "leaders", "close"}, exec.calls)
	assert.Equal(t, []string{"abc123"}, exec.args["open"])
	assert.Equal(t, []string{"on"}, exec.args["settings"])
	assert.Equal(t, []string{"inv-1"}, exec.args["delguess"])
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("help\nopen k\nhelp\nfoobar\nquit\n")))

	assert.Contains(t, *out, helpHome)
	assert.Contains(t, *out, helpEvent)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("events")))

	assert.Equal(t, []string{"events"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureREPL(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")))

	assert.Empty(t, exec.calls)
}
