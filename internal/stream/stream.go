package stream

import (
	"bufio"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/mlowery2/txmedian/internal/graph"
)

// maxLineBytes bounds a single input record. Payment records are small;
// anything past this is a corrupt stream.
const maxLineBytes = 1 << 20

// Transaction is the wire form of one input record: a single JSON object
// per line naming the two participants and the event time.
type Transaction struct {
	Actor       string `json:"actor"`
	Target      string `json:"target"`
	CreatedTime string `json:"created_time"`
}

// Summary describes one completed processing pass over an input stream.
type Summary struct {
	Lines   int       // input lines read
	Emitted int       // median lines written
	Skipped int       // malformed lines dropped
	Medians []float64 // every median emitted, in order
}

// Processor feeds transactions through a windowed graph and writes the
// rolling median degree after each one.
type Processor struct {
	graph *graph.Graph

	// Warnings, when non-nil, receives one line per skipped record.
	Warnings io.Writer
}

// NewProcessor returns a Processor driving the given graph.
func NewProcessor(g *graph.Graph) *Processor {
	return &Processor{graph: g}
}

// Run consumes r line by line until EOF, writing one two-decimal median per
// well-formed record to w. A malformed record (invalid JSON, missing actor
// or target, malformed timestamp) produces no output line and does not stop
// the stream. An edge rejected by the window policy is not malformed: the
// current median is still emitted for it.
func (p *Processor) Run(r io.Reader, w io.Writer) (*Summary, error) {
	sum := &Summary{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		sum.Lines++

		edge, err := decodeEdge(scanner.Bytes())
		if err != nil {
			sum.Skipped++
			if p.Warnings != nil {
				fmt.Fprintf(p.Warnings, "warning: line %d skipped: %v\n", sum.Lines, err)
			}
			continue
		}

		p.graph.AddEdge(edge)

		median, ok := p.graph.MedianDegree()
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%.2f\n", median); err != nil {
			return sum, fmt.Errorf("write median: %w", err)
		}
		sum.Emitted++
		sum.Medians = append(sum.Medians, median)
	}

	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("read input: %w", err)
	}
	return sum, nil
}

// decodeEdge parses one input line into a graph edge.
func decodeEdge(line []byte) (graph.Edge, error) {
	var tx Transaction
	if err := json.Unmarshal(line, &tx); err != nil {
		return graph.Edge{}, fmt.Errorf("decode transaction: %w", err)
	}
	if tx.Actor == "" || tx.Target == "" {
		return graph.Edge{}, fmt.Errorf("transaction missing actor or target")
	}
	return graph.NewEdge(tx.Actor, tx.Target, tx.CreatedTime)
}
