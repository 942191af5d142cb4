package route

import (
	"fmt"
	"strings"
)

// Mode is a transport modal a user can select for a route.
type Mode string

const (
	ModeBus     Mode = "bus"
	ModeMetro   Mode = "metro"
	ModeBike    Mode = "bike"
	ModeWalking Mode = "walking"
	ModeCarpool Mode = "carpool"
)

// travelModes maps each selectable mode to the routing collaborator's travel mode.
var travelModes = map[Mode]TravelMode{
	ModeBus:     TravelModeTransit,
	ModeMetro:   TravelModeTransit,
	ModeBike:    TravelModeBicycling,
	ModeWalking: TravelModeWalking,
	ModeCarpool: TravelModeDriving,
}

// AllModes lists the selectable modes in display order.
func AllModes() []Mode {
	return []Mode{ModeBus, ModeMetro, ModeBike, ModeWalking, ModeCarpool}
}

// IsValid returns true if the mode is one of the selectable modes.
func (m Mode) IsValid() bool {
	_, ok := travelModes[m]
	return ok
}

// TravelMode returns the routing travel mode used when m is the primary mode.
func (m Mode) TravelMode() TravelMode {
	return travelModes[m]
}

// IsActive reports whether the mode is human-powered.
func (m Mode) IsActive() bool {
	return m == ModeBike || m == ModeWalking
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a string to a Mode, returning an error if it is unknown.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid mode: %s", s)
	}
	return m, nil
}

// containsMode reports whether modes includes target.
func containsMode(modes []Mode, target Mode) bool {
	for _, m := range modes {
		if m == target {
			return true
		}
	}
	return false
}

// Objective is the optimisation bias of a route request.
type Objective string

const (
	ObjectiveFastest     Objective = "FASTEST"
	ObjectiveSustainable Objective = "SUSTAINABLE"
)

// IsValid returns true if the objective is recognised.
func (o Objective) IsValid() bool {
	return o == ObjectiveFastest || o == ObjectiveSustainable
}

func (o Objective) String() string {
	return string(o)
}

// ParseObjective accepts either case of the objective names.
func ParseObjective(s string) (Objective, error) {
	o := Objective(strings.ToUpper(strings.TrimSpace(s)))
	if !o.IsValid() {
		return "", fmt.Errorf("invalid objective: %s", s)
	}
	return o, nil
}
