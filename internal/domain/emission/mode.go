package emission

import (
	"fmt"
	"strings"
)

// Mode is a transport mode with a known emission factor.
type Mode string

const (
	ModeBus     Mode = "bus"
	ModeMetro   Mode = "metro"
	ModeBike    Mode = "bike"
	ModeWalking Mode = "walking"
	ModeCar     Mode = "car"
)

// ReferenceMode is the mode avoided emissions are measured against.
const ReferenceMode = ModeCar

// factors are kg CO2 per km.
var factors = map[Mode]float64{
	ModeBus:     0.089,
	ModeMetro:   0.041,
	ModeBike:    0,
	ModeWalking: 0,
	ModeCar:     0.192,
}

// AllModes lists the modes in display order.
func AllModes() []Mode {
	return []Mode{ModeBus, ModeMetro, ModeBike, ModeWalking, ModeCar}
}

// IsValid returns true if the mode has an emission factor.
func (m Mode) IsValid() bool {
	_, ok := factors[m]
	return ok
}

// Factor returns kg CO2 emitted per km.
func (m Mode) Factor() float64 {
	return factors[m]
}

func (m Mode) String() string {
	return string(m)
}

// ParseMode converts a string to a Mode, returning an error if it is unknown.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid emission mode: %s", s)
	}
	return m, nil
}
