// Package arrival models the near-real-time arrivals board.
package arrival

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ArrivingThresholdMinutes is the largest ETA shown as arriving.
const ArrivingThresholdMinutes = 2

// LineType distinguishes bus from metro lines.
type LineType string

const (
	LineTypeBus   LineType = "bus"
	LineTypeMetro LineType = "metro"
)

// IsValid returns true if the line type is recognized.
func (t LineType) IsValid() bool {
	return t == LineTypeBus || t == LineTypeMetro
}

// Status is the board status of an arrival.
type Status string

const (
	StatusArriving Status = "arriving"
	StatusOnTime   Status = "on_time"
)

// Arrival is the next expected vehicle of a line.
type Arrival struct {
	LineNumber  string   `json:"line_number"`
	LineName    string   `json:"line_name,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Type        LineType `json:"type"`
	// Minutes until arrival, never negative.
	Minutes int `json:"minutes"`
	// ScheduledAt is the local HH:MM time of arrival.
	ScheduledAt string `json:"scheduled_at"`
}

// Status returns arriving when the vehicle is at most two minutes away.
func (a Arrival) Status() Status {
	if a.Minutes <= ArrivingThresholdMinutes {
		return StatusArriving
	}
	return StatusOnTime
}

// DisplayName prefers the line name, then the destination.
func (a Arrival) DisplayName() string {
	switch {
	case strings.TrimSpace(a.LineName) != "":
		return a.LineName
	case strings.TrimSpace(a.Destination) != "":
		return a.Destination
	default:
		return "Destination"
	}
}

// FromSchedule builds an Arrival due at next, measured from now.
func FromSchedule(lineNumber, name string, lineType LineType, next, now time.Time) Arrival {
	minutes := int(next.Sub(now) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return Arrival{
		LineNumber:  lineNumber,
		LineName:    name,
		Type:        lineType,
		Minutes:     minutes,
		ScheduledAt: next.Format("15:04"),
	}
}

// FormatMinutes renders an ETA: "now", "1 minute", "N minutes" or "Hh Mm".
func FormatMinutes(minutes int) string {
	switch {
	case minutes < 1:
		return "now"
	case minutes == 1:
		return "1 minute"
	case minutes < 60:
		return fmt.Sprintf("%d minutes", minutes)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

// Earliest keeps one arrival per line, the one with the fewest minutes.
// Lines keep the order in which they first appear.
func Earliest(arrivals []Arrival) []Arrival {
	index := make(map[string]int, len(arrivals))
	out := make([]Arrival, 0, len(arrivals))
	for _, a := range arrivals {
		i, seen := index[a.LineNumber]
		if !seen {
			index[a.LineNumber] = len(out)
			out = append(out, a)
			continue
		}
		if a.Minutes < out[i].Minutes {
			out[i] = a
		}
	}
	return out
}

// BoardEntry is one row of the arrivals board.
type BoardEntry struct {
	Arrival
	Name      string `json:"name"`
	Label     string `json:"label"`
	Status    Status `json:"status"`
	Favorited bool   `json:"favorited"`
}

// BuildBoard decorates arrivals with labels and favorite flags, soonest first.
func BuildBoard(arrivals []Arrival, favorites map[string]bool) []BoardEntry {
	entries := make([]BoardEntry, 0, len(arrivals))
	for _, a := range arrivals {
		entries = append(entries, BoardEntry{
			Arrival:   a,
			Name:      a.DisplayName(),
			Label:     FormatMinutes(a.Minutes),
			Status:    a.Status(),
			Favorited: favorites[a.LineNumber],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Minutes != entries[j].Minutes {
			return entries[i].Minutes < entries[j].Minutes
		}
		return entries[i].LineNumber < entries[j].LineNumber
	})
	return entries
}
