package arrival

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// SourceKind selects where the board reads arrivals from.
type SourceKind string

const (
	// SourceStatic reads the curated transport lines table.
	SourceStatic SourceKind = "static"
	// SourceLive reads the table fed by the live arrivals topic.
	SourceLive SourceKind = "live"
)

// ParseSourceKind converts a configuration value to a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch k := SourceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case SourceStatic, SourceLive:
		return k, nil
	case "":
		return SourceStatic, nil
	default:
		return "", fmt.Errorf("invalid arrivals source: %s", s)
	}
}

// Source lists the current arrivals.
type Source interface {
	Kind() SourceKind
	Arrivals(ctx context.Context) ([]Arrival, error)
}

// FeedStore persists arrivals received from the live feed.
type FeedStore interface {
	// Upsert replaces the stored arrival of each line.
	Upsert(ctx context.Context, arrivals []Arrival, receivedAt time.Time) error
}
