package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	hasSession() bool
	Open(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Chart(ctx context.Context, args []string) error
	Leaders(ctx context.Context, args []string) error
	Events(ctx context.Context, args []string) error
	Guess(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Claim(ctx context.Context, args []string) error
	Answer(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Describe(ctx context.Context, args []string) error
	DelGuess(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	CloseEvent(ctx context.Context, args []string) error
}

const (
	helpHome  = "Available commands: open <key>, create, events, help, exit"
	helpEvent = "Available commands: show, (l)ist, chart, leaders, guess, edit, claim, answer, settings on|off, describe, delguess <invitee>, delete, close, open <key>, create, events, exit"
)

// runREPL reads one command per line from r and dispatches it to a until
// input ends or the user types "exit" or "quit".
//
// Command handlers print their own results and failures, so their errors are
// ignored here and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("bg %s> ", statusFn()))

		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.hasSession() {
				printlnFn(helpEvent)
			} else {
				printlnFn(helpHome)
			}

		case "open":
			_ = a.Open(ctx, args)
		case "create":
			_ = a.Create(ctx, args)
		case "events":
			_ = a.Events(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "l", "list":
			_ = a.List(ctx, args)
		case "chart":
			_ = a.Chart(ctx, args)
		case "leaders":
			_ = a.Leaders(ctx, args)
		case "guess":
			_ = a.Guess(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "claim":
			_ = a.Claim(ctx, args)
		case "answer":
			_ = a.Answer(ctx, args)
		case "settings":
			_ = a.Settings(ctx, args)
		case "describe":
			_ = a.Describe(ctx, args)
		case "delguess":
			_ = a.DelGuess(ctx, args)
		case "delete":
			_ = a.Delete(ctx, args)
		case "close":
			_ = a.CloseEvent(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
