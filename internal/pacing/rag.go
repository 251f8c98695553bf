// Package pacing implements the red/amber/green classification used to
// judge progress against a goal relative to how much of the event
// window has elapsed.
package pacing

import (
	"math"
	"strings"
)

// Status is one of the four pacing classifications, carrying the
// display glyph and color token the report and dashboard render.
type Status struct {
	Status string `json:"status"`
	Emoji  string `json:"emoji"`
	Color  string `json:"color"`
}

var (
	Green  = Status{Status: "green", Emoji: "🟢", Color: "#10b981"}
	Yellow = Status{Status: "yellow", Emoji: "🟡", Color: "#f59e0b"}
	Red    = Status{Status: "red", Emoji: "🔴", Color: "#ef4444"}
	NA     = Status{Status: "na", Emoji: "⚪", Color: "gray"}
)

// aheadOfUnstartedSchedule is the pacing index assigned when progress
// exists before any of the window has elapsed.
const aheadOfUnstartedSchedule = 999

// RAGStatus classifies (actual, goal, elapsedPercent) into a pacing
// status. A zero goal cannot be paced against and is always NA. The
// rules are evaluated in order, first match wins:
//
//	green:  completion >= 90% or pacing index >= 1.0
//	yellow: completion >= 70% or pacing index >= 0.85
//	red:    otherwise
//
// The pacing index is completion percent divided by elapsed percent;
// with zero elapsed time it is 999 when there is any progress (ahead
// of a schedule that has not started) and 0 otherwise.
func RAGStatus(actual, goal float64, elapsedPercent float64) Status {
	if goal == 0 {
		return NA
	}

	completionPercent := actual / goal * 100

	var pacingIndex float64
	switch {
	case elapsedPercent > 0:
		pacingIndex = completionPercent / elapsedPercent
	case actual > 0:
		pacingIndex = aheadOfUnstartedSchedule
	default:
		pacingIndex = 0
	}

	switch {
	case completionPercent >= 90 || pacingIndex >= 1.0:
		return Green
	case completionPercent >= 70 || pacingIndex >= 0.85:
		return Yellow
	default:
		return Red
	}
}

const (
	filledGlyph = "█"
	emptyGlyph  = "░"
)

// ProgressBar renders a fixed-width block-character bar for the given
// completion percent. The filled segment is round(percent/100*length),
// clamped to [0, length].
func ProgressBar(percent float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(math.Round(percent / 100 * float64(length)))
	if filled < 0 {
		filled = 0
	}
	if filled > length {
		filled = length
	}
	return strings.Repeat(filledGlyph, filled) + strings.Repeat(emptyGlyph, length-filled)
}
