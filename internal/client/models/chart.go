package models

// ChartPoint is one mark on the guesses scatter chart. X is unix
// milliseconds, Y and Z are kilograms (Z drives the bubble size).
type ChartPoint struct {
	X         float64
	Y         float64
	Z         float64
	Name      string
	Color     string
	InviteeID string
}
