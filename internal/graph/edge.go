package graph

import (
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the only accepted wire format for transaction creation
// times: UTC at second resolution with a literal trailing Z. No timezone
// offsets, no fractional seconds.
const TimestampLayout = "2006-01-02T15:04:05Z"

// ErrMalformedTimestamp reports a creation time that does not match
// TimestampLayout or names an impossible calendar date/time.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// Edge is an undirected connection between two vertices, stamped with the
// transaction's creation time. Immutable once constructed; the two
// endpoints may be the same vertex.
type Edge struct {
	V1      string
	V2      string
	Created time.Time
}

// NewEdge builds an Edge from two vertex identifiers and a wire-format
// timestamp. The returned error wraps ErrMalformedTimestamp when ts cannot
// be parsed; test with errors.Is.
func NewEdge(v1, v2, ts string) (Edge, error) {
	// time.Parse alone is too lenient: it tolerates a fractional second
	// after the seconds field. The wire format is fixed-width.
	if len(ts) != len(TimestampLayout) {
		return Edge{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return Edge{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, ts)
	}
	return Edge{V1: v1, V2: v2, Created: t}, nil
}

// Vertices returns the edge's two endpoints.
func (e Edge) Vertices() [2]string {
	return [2]string{e.V1, e.V2}
}
