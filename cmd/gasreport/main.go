// Command gasreport is a single-shot diagnostic that analyzes gas utilization
// and base fees over the most recent blocks of an Ethereum-compatible chain.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/casks-mutters/zk-gas-soundness/internal/config"
	"github.com/casks-mutters/zk-gas-soundness/internal/env"
	"github.com/casks-mutters/zk-gas-soundness/internal/gas"
	"github.com/casks-mutters/zk-gas-soundness/internal/output"
	"github.com/casks-mutters/zk-gas-soundness/internal/report"
	"github.com/casks-mutters/zk-gas-soundness/internal/rpc"
)

func rootCmd() *cobra.Command {
	var (
		rpcURL      string
		count       int
		timeoutSecs int
		workers     int
		jsonOut     bool
		reportOut   bool
		cfgPath     string
	)

	cmd := &cobra.Command{
		Use:   "gasreport",
		Short: "Analyze recent block gas usage, base fee, and utilization",
		Long: `Fetch the N most recent block headers from a JSON-RPC endpoint, derive
per-block gas utilization and base-fee metrics, and print an aggregate summary.

Examples:
  gasreport
  gasreport --count 20 --rpc https://eth-mainnet.example/v2/KEY
  gasreport --json --timeout 10
  gasreport --workers 4 --report`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{
				RPCURL:  config.DefaultRPCURL(),
				Count:   count,
				Timeout: time.Duration(timeoutSecs) * time.Second,
				Workers: workers,
				JSON:    jsonOut,
				Report:  reportOut,
			}

			if cfgPath != "" {
				f, err := config.LoadFile(cfgPath)
				if err != nil {
					return err
				}
				f.Apply(cfg)
			}

			// Flags win over both the config file and the environment, but
			// only when the user actually set them.
			if cmd.Flags().Changed("rpc") {
				cfg.RPCURL = rpcURL
			}
			if cmd.Flags().Changed("count") {
				cfg.Count = count
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = time.Duration(timeoutSecs) * time.Second
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc", config.PlaceholderRPC, "RPC endpoint URL (default: env RPC_URL)")
	cmd.Flags().IntVar(&count, "count", 10, "Number of recent blocks to analyze")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 30, "Per-call RPC timeout in seconds")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent block fetches (1 = sequential)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Also print the structured JSON document")
	cmd.Flags().BoolVar(&reportOut, "report", false, "Write the JSON document to reports/")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Optional YAML config file")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.JSON {
		// Keep the combined stdout stream clean for piping.
		output.DisableColors()
	}

	started := time.Now()
	output.RenderHeader(os.Stdout, cfg.RPCURL, cfg.Count, started)

	client := rpc.NewClient(cfg.RPCURL, cfg.Timeout)

	// Liveness probe before any analysis work.
	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if _, err := client.BlockNumber(probeCtx); err != nil {
		return &gas.ConnectivityError{URL: cfg.RPCURL, Err: err}
	}

	progress := gas.ProgressFunc(func(blockNumber uint64, processed, total int) {
		output.RenderProgress(os.Stdout, blockNumber, processed, total)
	})
	analyzer := gas.NewAnalyzer(gas.NewFetcher(client), cfg.Workers, progress)

	blocks, err := analyzer.Analyze(ctx, cfg.Count)
	if err != nil {
		return err
	}

	summary := gas.Summarize(blocks)
	elapsed := time.Since(started)

	output.RenderBlocks(os.Stdout, blocks)
	output.RenderSummary(os.Stdout, summary, elapsed)

	if cfg.JSON || cfg.Report {
		doc := output.NewDocument(cfg.RPCURL, blocks, summary, elapsed)
		if cfg.JSON {
			if err := output.RenderJSON(os.Stdout, doc); err != nil {
				return err
			}
		}
		if cfg.Report {
			path, err := report.WriteJSON(doc, "gas")
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "JSON report written to: %s\n", path)
		}
	}

	return nil
}

// exitCode maps the error taxonomy to process exit codes: fetch/analyze
// failures are 2, configuration and connectivity failures are 1.
func exitCode(err error) int {
	var fetchErr *gas.FetchError
	if errors.As(err, &fetchErr) {
		return 2
	}
	return 1
}

func main() {
	env.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
