package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/casks-mutters/zk-gas-soundness/internal/gas"
)

// Document is the machine-readable output emitted with --json and written to
// disk with --report.
type Document struct {
	RPC            string             `json:"rpc"`
	TimestampUTC   string             `json:"timestamp_utc"`
	Blocks         []gas.BlockMetrics `json:"blocks"`
	Summary        gas.Summary        `json:"summary"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
}

// NewDocument assembles the JSON document for a completed run.
func NewDocument(rpcURL string, blocks []gas.BlockMetrics, summary gas.Summary, elapsed time.Duration) *Document {
	return &Document{
		RPC:            rpcURL,
		TimestampUTC:   time.Now().UTC().Format(time.RFC3339),
		Blocks:         blocks,
		Summary:        summary,
		ElapsedSeconds: gas.Round2(elapsed.Seconds()),
	}
}

// RenderJSON writes the document, indented, to w.
func RenderJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
