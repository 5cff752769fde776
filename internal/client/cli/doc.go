// Package cli provides the interactive babyguessr terminal client.
//
// It drives a session.Viewer from a small REPL: open an event by invite key,
// watch its guesses and chart update live, submit or edit a guess, and run
// admin actions when this device holds the event's secret.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends. See runREPL for the command list.
package cli
