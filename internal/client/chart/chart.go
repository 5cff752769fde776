// Package chart projects reconciled guesses onto scatter-chart coordinates.
//
// Same-day guesses are spread horizontally by a deterministic offset derived
// from each guess's content, so a guess lands on the same spot on every
// render and distinct weights are never merged into one mark.
package chart

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dmitrijs2005/babyguessr/internal/client/models"
	"github.com/dmitrijs2005/babyguessr/internal/timex"
)

const dayMs = float64(24 * time.Hour / time.Millisecond)

// The jitter keeps marks inside [5%, 95%] of their day.
const (
	jitterLo   = 0.05
	jitterSpan = 0.90
)

// Fixed weight axis, in kg.
const (
	AxisMinKg = 0.0
	AxisMaxKg = 12.0
)

// Offset is the position of g inside its day as a fraction in [0.05, 0.95).
func Offset(g models.Guess) float64 {
	h := xxhash.Sum64String(fmt.Sprintf("%s|%s|%s|%g",
		g.DisplayName, g.ColorHex, g.GuessedDate.Format(timex.DateLayout), g.GuessedWeightKg))
	// 53 high bits give an exact float64 in [0, 1).
	u := float64(h>>11) / float64(1<<53)
	return jitterLo + u*jitterSpan
}

// Project returns one point per guess. The output order depends only on the
// points themselves, never on the input order.
func Project(guesses []models.Guess) []models.ChartPoint {
	points := make([]models.ChartPoint, 0, len(guesses))
	for _, g := range guesses {
		day := g.GuessedDate.Day()
		points = append(points, models.ChartPoint{
			X:         float64(day.UnixMilli()) + Offset(g)*dayMs,
			Y:         g.GuessedWeightKg,
			Z:         g.GuessedWeightKg,
			Name:      g.DisplayName,
			Color:     g.ColorHex,
			InviteeID: g.InviteeID,
		})
	}
	slices.SortFunc(points, comparePoints)
	return points
}

func comparePoints(a, b models.ChartPoint) int {
	return cmp.Or(
		cmp.Compare(a.X, b.X),
		cmp.Compare(a.Y, b.Y),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Color, b.Color),
		cmp.Compare(a.InviteeID, b.InviteeID),
	)
}

// Bounds is the visible area of the chart.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Domain returns the axis bounds for points: X spans the first to the last
// guessed day in whole days, Y is the fixed weight axis. ok is false for an
// empty chart.
func Domain(points []models.ChartPoint) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	minX, maxX := points[0].X, points[0].X
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
	}
	return Bounds{
		MinX: floorDay(minX),
		MaxX: floorDay(maxX) + dayMs,
		MinY: AxisMinKg,
		MaxY: AxisMaxKg,
	}, true
}

func floorDay(ms float64) float64 {
	t := time.UnixMilli(int64(ms)).UTC()
	return float64(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli())
}

// GroupAt lists the points drawn at exactly (x, y), in projection order.
func GroupAt(points []models.ChartPoint, x, y float64) []models.ChartPoint {
	var out []models.ChartPoint
	for _, p := range points {
		if p.X == x && p.Y == y {
			out = append(out, p)
		}
	}
	return out
}

// Day returns the calendar day a point belongs to.
func Day(p models.ChartPoint) time.Time {
	return time.UnixMilli(int64(p.X)).UTC().Truncate(24 * time.Hour)
}
