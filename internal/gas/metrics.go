// Package gas implements the core of the tool: fetching block headers,
// deriving per-block gas utilization metrics, and reducing them into an
// aggregate summary.
package gas

import (
	"math"
	"math/big"
	"time"

	"github.com/casks-mutters/zk-gas-soundness/internal/rpc"
)

// BlockMetrics holds the gas-related view of one block. Constructed once from
// a single RPC response and never mutated afterwards.
//
// BaseFeeWei is a *big.Int because base fees are denominated in wei and may
// exceed uint64 range. Blocks without the fee-market upgrade report it as
// zero, not nil, so downstream arithmetic never has to nil-check.
type BlockMetrics struct {
	BlockNumber        uint64   `json:"block_number"`
	BaseFeeWei         *big.Int `json:"base_fee_wei"`
	GasLimit           uint64   `json:"gas_limit"`
	GasUsed            uint64   `json:"gas_used"`
	UtilizationPercent float64  `json:"utilization_percent"`
	Timestamp          string   `json:"timestamp"`
}

// Utilization computes gas utilization as a percentage rounded to 2 decimals.
// A zero gas limit yields 0 rather than dividing by zero; that cannot happen
// on a real chain but the guard keeps the math total.
func Utilization(gasUsed, gasLimit uint64) float64 {
	if gasLimit == 0 {
		return 0
	}
	return Round2(float64(gasUsed) / float64(gasLimit) * 100)
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds to 3 decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// MetricsFromBlock derives BlockMetrics from a raw block header.
//
// The required fields are number, timestamp, gasLimit, and gasUsed — if any
// of them fails to parse the block is considered malformed. baseFeePerGas is
// optional and defaults to 0 when absent.
func MetricsFromBlock(block *rpc.Block) (BlockMetrics, error) {
	number, err := rpc.ParseHexUint64(block.Number)
	if err != nil {
		return BlockMetrics{}, err
	}
	ts, err := rpc.ParseHexUint64(block.Timestamp)
	if err != nil {
		return BlockMetrics{}, err
	}
	gasLimit, err := rpc.ParseHexUint64(block.GasLimit)
	if err != nil {
		return BlockMetrics{}, err
	}
	gasUsed, err := rpc.ParseHexUint64(block.GasUsed)
	if err != nil {
		return BlockMetrics{}, err
	}

	baseFee := big.NewInt(0)
	if block.BaseFeePerGas != "" {
		baseFee, err = rpc.ParseHexBigInt(block.BaseFeePerGas)
		if err != nil {
			return BlockMetrics{}, err
		}
	}

	return BlockMetrics{
		BlockNumber:        number,
		BaseFeeWei:         baseFee,
		GasLimit:           gasLimit,
		GasUsed:            gasUsed,
		UtilizationPercent: Utilization(gasUsed, gasLimit),
		Timestamp:          time.Unix(int64(ts), 0).UTC().Format(time.RFC3339),
	}, nil
}
