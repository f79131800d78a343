// Package output renders analysis results: colorized human-readable text for
// the terminal and a structured JSON document for machines.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/casks-mutters/zk-gas-soundness/internal/gas"
	"github.com/casks-mutters/zk-gas-soundness/internal/rpc"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// DisableColors turns off ANSI colors globally, used when machine-readable
// output is interleaved with the terminal rendering.
func DisableColors() {
	color.NoColor = true
}

// RenderHeader prints the run banner: tool name, endpoint, block count, and
// the UTC start timestamp.
func RenderHeader(w io.Writer, rpcURL string, count int, started time.Time) {
	fmt.Fprintln(w, bold("zk-gas-soundness"))
	fmt.Fprintf(w, "  RPC:       %s\n", cyan(rpcURL))
	fmt.Fprintf(w, "  Blocks:    %d\n", count)
	fmt.Fprintf(w, "  Timestamp: %s\n", started.UTC().Format(time.RFC3339))
	fmt.Fprintln(w)
}

// RenderProgress prints one line per completed block fetch with position and
// percentage complete.
func RenderProgress(w io.Writer, blockNumber uint64, processed, total int) {
	percent := float64(processed) / float64(total) * 100
	fmt.Fprintf(w, "Analyzing block %s (%d/%d, %.1f%% complete)\n",
		rpc.FormatNumber(blockNumber), processed, total, percent)
}

// RenderBlocks prints the per-block metrics table, oldest block first.
func RenderBlocks(w io.Writer, blocks []gas.BlockMetrics) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Per-Block Gas Metrics"))

	headerFmt := color.New(color.FgCyan, color.Underline).SprintfFunc()
	tbl := table.New("Block", "Gas Used", "Gas Limit", "Utilization", "Base Fee", "Timestamp")
	tbl.WithWriter(w)
	tbl.WithHeaderFormatter(headerFmt)

	for _, b := range blocks {
		tbl.AddRow(
			rpc.FormatNumber(b.BlockNumber),
			rpc.FormatNumber(b.GasUsed),
			rpc.FormatNumber(b.GasLimit),
			colorUtilization(b.UtilizationPercent),
			rpc.FormatGwei(b.BaseFeeWei),
			b.Timestamp,
		)
	}

	tbl.Print()
	fmt.Fprintln(w)
}

// RenderSummary prints the aggregate statistics followed by elapsed seconds.
func RenderSummary(w io.Writer, summary gas.Summary, elapsed time.Duration) {
	fmt.Fprintln(w, bold("Summary"))

	if !summary.Valid {
		fmt.Fprintf(w, "  %s\n", dim("No data"))
		return
	}

	fmt.Fprintf(w, "  Avg Utilization: %s\n", colorUtilization(summary.AvgUtilization))
	fmt.Fprintf(w, "  Max Utilization: %s\n", colorUtilization(summary.MaxUtilization))
	fmt.Fprintf(w, "  Min Utilization: %s\n", colorUtilization(summary.MinUtilization))
	fmt.Fprintf(w, "  Avg Base Fee:    %.3f gwei\n", summary.AvgBaseFeeGwei)
	fmt.Fprintf(w, "  Blocks Analyzed: %d\n", summary.TotalBlocks)
	fmt.Fprintf(w, "Completed in %.2fs\n", elapsed.Seconds())
}

// colorUtilization maps utilization to a severity color: green below 50%,
// yellow up to 90%, red above. Blocks targeting 50% utilization under
// EIP-1559 make sustained values near the limit worth highlighting.
func colorUtilization(pct float64) string {
	str := fmt.Sprintf("%.2f%%", pct)
	switch {
	case pct < 50:
		return green(str)
	case pct < 90:
		return yellow(str)
	default:
		return red(str)
	}
}
