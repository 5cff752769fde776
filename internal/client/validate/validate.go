// Package validate runs the pre-submit checks a guess or an answer must pass
// before any request is sent. The server re-validates everything.
package validate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

// ErrValidationFailed is matched by every *Error.
var ErrValidationFailed = errors.New("validation failed")

// Weight bounds applied when an event does not set its own.
const (
	HardMinWeightKg = 1.0
	HardMaxWeightKg = 8.0
)

// MaxNameLen caps display names.
const MaxNameLen = 64

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// Error collects every failed field.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return ErrValidationFailed }

func result(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &Error{Fields: errs}
}

// WeightRange returns the accepted guess weights for ev, clamped to the hard
// bounds.
func WeightRange(ev *models.Event) (lo, hi float64) {
	lo, hi = HardMinWeightKg, HardMaxWeightKg
	if ev != nil && ev.MinWeightKg != nil {
		lo = math.Max(lo, *ev.MinWeightKg)
	}
	if ev != nil && ev.MaxWeightKg != nil {
		hi = math.Min(hi, *ev.MaxWeightKg)
	}
	return lo, hi
}

// LatestGuessDate is the last day a guess may name: one month past the due
// date. Nil when the event has no due date.
func LatestGuessDate(ev *models.Event) *timex.LocalTime {
	if ev == nil || ev.DueDate == nil {
		return nil
	}
	d := timex.LocalTime{Time: ev.DueDate.Day().AddDate(0, 1, 0)}
	return &d
}

// Guess checks sub against ev at wall-clock time now.
func Guess(ev *models.Event, sub models.GuessSubmission, now time.Time) error {
	var errs []FieldError

	if ev != nil && !ev.GuessingOpen(now) {
		errs = append(errs, FieldError{"event", "guessing is closed"})
	}

	name := strings.TrimSpace(sub.DisplayName)
	if name == "" {
		errs = append(errs, FieldError{"display_name", "required"})
	} else if len(name) > MaxNameLen {
		errs = append(errs, FieldError{"display_name", fmt.Sprintf("max length %d", MaxNameLen)})
	}

	if !colorRe.MatchString(sub.ColorHex) {
		errs = append(errs, FieldError{"color_hex", "must be #rrggbb"})
	}

	lo, hi := WeightRange(ev)
	w := sub.GuessedWeightKg
	switch {
	case math.IsNaN(w) || math.IsInf(w, 0):
		errs = append(errs, FieldError{"guessed_weight_kg", "must be a number"})
	case w < lo || w > hi:
		errs = append(errs, FieldError{"guessed_weight_kg", fmt.Sprintf("must be between %.2f and %.2f", lo, hi)})
	}

	if sub.GuessedDate.IsZero() {
		errs = append(errs, FieldError{"guessed_date", "required"})
	} else {
		day := sub.GuessedDate.Day()
		today := timex.NewLocalTime(now).Day()
		if day.Before(today.Time) {
			errs = append(errs, FieldError{"guessed_date", "must not be in the past"})
		}
		if latest := LatestGuessDate(ev); latest != nil && day.After(latest.Time) {
			errs = append(errs, FieldError{"guessed_date", "must not be later than one month after the due date"})
		}
	}

	return result(errs)
}

// Answer checks a recorded outcome.
func Answer(birthDate timex.LocalTime, birthWeightKg float64) error {
	var errs []FieldError
	if birthDate.IsZero() {
		errs = append(errs, FieldError{"birth_date", "required"})
	}
	switch {
	case math.IsNaN(birthWeightKg) || math.IsInf(birthWeightKg, 0):
		errs = append(errs, FieldError{"birth_weight_kg", "must be a number"})
	case birthWeightKg < HardMinWeightKg || birthWeightKg > HardMaxWeightKg:
		errs = append(errs, FieldError{"birth_weight_kg", fmt.Sprintf("must be between %.1f and %.1f", HardMinWeightKg, HardMaxWeightKg)})
	}
	return result(errs)
}

// NewEvent checks a creation request.
func NewEvent(req models.NewEvent) error {
	var errs []FieldError
	if strings.TrimSpace(req.Title) == "" {
		errs = append(errs, FieldError{"title", "required"})
	}
	if req.DueDate.IsZero() {
		errs = append(errs, FieldError{"due_date", "required"})
	}
	if req.GuessCloseDate != nil && !req.DueDate.IsZero() && req.GuessCloseDate.After(req.DueDate.Time) {
		errs = append(errs, FieldError{"guess_close_date", "must not be after the due date"})
	}
	lo, hi := HardMinWeightKg, HardMaxWeightKg
	if req.MinWeightKg != nil {
		lo = *req.MinWeightKg
	}
	if req.MaxWeightKg != nil {
		hi = *req.MaxWeightKg
	}
	if lo < HardMinWeightKg || hi > HardMaxWeightKg || lo >= hi {
		errs = append(errs, FieldError{"weight_range", fmt.Sprintf("must satisfy %.1f <= min < max <= %.1f", HardMinWeightKg, HardMaxWeightKg)})
	}
	return result(errs)
}
