package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/babyguessr/internal/client/chart"
	"github.com/dmitrijs2005/babyguessr/internal/client/client"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/client/services"
	"github.com/dmitrijs2005/babyguessr/internal/client/session"
	"github.com/dmitrijs2005/babyguessr/internal/client/validate"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
)

const (
	chartWidth  = 60
	chartHeight = 12
)

// describeErr turns a service error into a line for the user.
func describeErr(err error) string {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return "Invalid input: " + verr.Error()
	case errors.Is(err, services.ErrNotAdmin):
		return "This device is not an admin of the event. Use 'claim' with the admin secret."
	case errors.Is(err, services.ErrEditNotPermitted):
		return "This guess cannot be edited."
	case errors.Is(err, client.ErrNotFound):
		return "Event not found."
	case errors.Is(err, client.ErrUnauthorized):
		return "The server rejected the credentials."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.Is(err, session.ErrClosed):
		return "The event is no longer open."
	default:
		return "Error: " + err.Error()
	}
}

func formatDay(t *timex.LocalTime) string {
	if t == nil {
		return "-"
	}
	return t.Format(timex.DateLayout)
}

func renderEvent(w io.Writer, v session.View, now time.Time) {
	ev := v.Event
	if ev == nil {
		return
	}
	fmt.Fprintf(w, "%s  [key %s]\n", ev.Title, ev.EventKey)
	if ev.Description != nil && *ev.Description != "" {
		fmt.Fprintln(w, *ev.Description)
	}
	fmt.Fprintf(w, "Due: %s   Guesses close: %s\n", formatDay(ev.DueDate), formatDay(ev.ClosesAt()))

	lo, hi := validate.WeightRange(ev)
	fmt.Fprintf(w, "Weight range: %.1f-%.1f kg   Edits allowed: %t\n", lo, hi, ev.AllowGuessEdits)

	local := timex.NewLocalTime(now).Time
	switch {
	case ev.Ended():
		line := fmt.Sprintf("Ended: born %s", formatDay(ev.BirthDate))
		if ev.BirthWeightKg != nil {
			line += fmt.Sprintf(" at %.2f kg", *ev.BirthWeightKg)
		}
		if ev.EndedAt != nil {
			line += ", announced " + humanize.RelTime(ev.EndedAt.Time, local, "ago", "from now")
		}
		fmt.Fprintln(w, line)
	case ev.GuessingOpen(now):
		if c := ev.ClosesAt(); c != nil {
			fmt.Fprintf(w, "Guessing open, closes %s\n", humanize.RelTime(c.Time, local, "ago", "from now"))
		} else {
			fmt.Fprintln(w, "Guessing open")
		}
	default:
		fmt.Fprintln(w, "Guessing closed")
	}

	fmt.Fprintln(w, english.Plural(len(v.Guesses), "guess", "guesses"))
	if v.IsAdmin {
		fmt.Fprintln(w, "You are an admin of this event.")
	}
	if g, ok := v.MyGuess(); ok {
		fmt.Fprintf(w, "Your guess: %s\n", g)
	}
}

func renderGuesses(w io.Writer, v session.View) {
	if len(v.Guesses) == 0 {
		fmt.Fprintln(w, "No guesses yet.")
		return
	}
	fmt.Fprintf(w, "%s:\n", english.Plural(len(v.Guesses), "guess", "guesses"))
	for _, g := range v.Guesses {
		mine := ""
		if g.InviteeID != "" && g.InviteeID == v.MyInviteeID {
			mine = "  (you)"
		}
		fmt.Fprintf(w, "  %-20s %s  %s  %s kg  %s%s\n",
			g.DisplayName, g.ColorHex, g.GuessedDate.Format(timex.DateLayout),
			humanize.FormatFloat("#.##", g.GuessedWeightKg), g.InviteeID, mine)
	}
}

func renderLeaderboard(w io.Writer, lb models.Leaderboard) {
	if len(lb.ByDate) == 0 && len(lb.ByWeight) == 0 {
		fmt.Fprintln(w, "No leaderboard until the event has ended.")
		return
	}
	fmt.Fprintln(w, "Closest date:")
	for i, e := range lb.ByDate {
		delta := ""
		if e.DeltaDays != nil {
			delta = fmt.Sprintf("off by %s days", humanize.FormatFloat("#.#", *e.DeltaDays))
		}
		fmt.Fprintf(w, "  %-4s %-20s %s  %s\n", humanize.Ordinal(i+1), e.DisplayName,
			e.GuessedDate.Format(timex.DateLayout), delta)
	}
	fmt.Fprintln(w, "Closest weight:")
	for i, e := range lb.ByWeight {
		delta := ""
		if e.DeltaKg != nil {
			delta = fmt.Sprintf("off by %s kg", humanize.FormatFloat("#.##", *e.DeltaKg))
		}
		fmt.Fprintf(w, "  %-4s %-20s %s kg  %s\n", humanize.Ordinal(i+1), e.DisplayName,
			humanize.FormatFloat("#.##", e.GuessedWeightKg), delta)
	}
	if !lb.FromServer {
		fmt.Fprintln(w, "(computed on this device)")
	}
}

// renderChart draws points as a character grid: one letter per guess, '*'
// where several share a cell. A legend follows the grid.
func renderChart(w io.Writer, points []models.ChartPoint) {
	b, ok := chart.Domain(points)
	if !ok {
		fmt.Fprintln(w, "No guesses yet.")
		return
	}

	grid := make([][]rune, chartHeight)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", chartWidth))
	}
	for i, p := range points {
		col := cell(p.X, b.MinX, b.MaxX, chartWidth)
		row := chartHeight - 1 - cell(p.Y, b.MinY, b.MaxY, chartHeight)
		if grid[row][col] == ' ' {
			grid[row][col] = mark(i)
		} else {
			grid[row][col] = '*'
		}
	}

	step := (b.MaxY - b.MinY) / chartHeight
	for r, line := range grid {
		label := "      "
		if r%2 == 0 {
			label = fmt.Sprintf("%5.1f ", b.MaxY-float64(r)*step)
		}
		fmt.Fprintf(w, "%s|%s\n", label, string(line))
	}
	fmt.Fprintf(w, "      +%s\n", strings.Repeat("-", chartWidth))

	first := time.UnixMilli(int64(b.MinX)).UTC().Format(timex.DateLayout)
	last := time.UnixMilli(int64(b.MaxX) - 1).UTC().Format(timex.DateLayout)
	pad := max(chartWidth-len(first)-len(last), 1)
	fmt.Fprintf(w, "       %s%s%s\n", first, strings.Repeat(" ", pad), last)

	for i, p := range points {
		fmt.Fprintf(w, "  %c  %-20s %s  %s  %s kg\n", mark(i), p.Name, p.Color,
			chart.Day(p).Format(timex.DateLayout), humanize.FormatFloat("#.##", p.Y))
	}
}

func cell(v, lo, hi float64, n int) int {
	if hi <= lo {
		return 0
	}
	i := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	return min(max(i, 0), n-1)
}

func mark(i int) rune {
	switch {
	case i < 26:
		return rune('a' + i)
	case i < 52:
		return rune('A' + i - 26)
	default:
		return '#'
	}
}
