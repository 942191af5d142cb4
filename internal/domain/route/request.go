package route

import (
	"strings"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

// Request is a validated route estimation request.
type Request struct {
	Origin      string
	Destination string
	// Modes is non-empty, in selection order, without duplicates.
	Modes     []Mode
	Objective Objective
}

// NewRequest validates raw input. Every invalid field is reported at once.
// An empty objective defaults to FASTEST and repeated modes keep their first
// position.
func NewRequest(origin, destination string, modes []string, objective string) (Request, error) {
	var invalid []string

	origin = strings.TrimSpace(origin)
	if origin == "" {
		invalid = append(invalid, "origin")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		invalid = append(invalid, "destination")
	}

	parsed := make([]Mode, 0, len(modes))
	modesOK := len(modes) > 0
	for _, raw := range modes {
		m, err := ParseMode(raw)
		if err != nil {
			modesOK = false
			continue
		}
		if !containsMode(parsed, m) {
			parsed = append(parsed, m)
		}
	}
	if !modesOK {
		invalid = append(invalid, "modes")
	}

	obj := ObjectiveFastest
	if strings.TrimSpace(objective) != "" {
		var err error
		if obj, err = ParseObjective(objective); err != nil {
			invalid = append(invalid, "objective")
		}
	}

	if len(invalid) > 0 {
		return Request{}, apperror.NewFieldsError(invalid...)
	}
	return Request{Origin: origin, Destination: destination, Modes: parsed, Objective: obj}, nil
}

// Validate re-checks a Request that may have been built as a literal.
func (r Request) Validate() error {
	var invalid []string
	if strings.TrimSpace(r.Origin) == "" {
		invalid = append(invalid, "origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		invalid = append(invalid, "destination")
	}
	if len(r.Modes) == 0 {
		invalid = append(invalid, "modes")
	} else {
		for _, m := range r.Modes {
			if !m.IsValid() {
				invalid = append(invalid, "modes")
				break
			}
		}
	}
	if !r.Objective.IsValid() {
		invalid = append(invalid, "objective")
	}
	if len(invalid) > 0 {
		return apperror.NewFieldsError(invalid...)
	}
	return nil
}
