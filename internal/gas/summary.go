package gas

import "math/big"

// Summary aggregates a run's block metrics. Valid is false for the "no data"
// sentinel returned when there was nothing to analyze; callers must check it
// before reading the statistical fields.
type Summary struct {
	Valid          bool    `json:"-"`
	AvgUtilization float64 `json:"avg_utilization_percent"`
	MaxUtilization float64 `json:"max_utilization_percent"`
	MinUtilization float64 `json:"min_utilization_percent"`
	AvgBaseFeeGwei float64 `json:"avg_base_fee_gwei"`
	TotalBlocks    int     `json:"total_blocks"`
}

// Summarize reduces an ordered sequence of block metrics into a Summary.
// It is a pure function: deterministic, no side effects, no failure modes.
// An empty input yields the sentinel rather than an error.
func Summarize(blocks []BlockMetrics) Summary {
	if len(blocks) == 0 {
		return Summary{}
	}

	var (
		sumUtil float64
		maxUtil = blocks[0].UtilizationPercent
		minUtil = blocks[0].UtilizationPercent
		sumFees = new(big.Float)
	)

	for _, b := range blocks {
		sumUtil += b.UtilizationPercent
		if b.UtilizationPercent > maxUtil {
			maxUtil = b.UtilizationPercent
		}
		if b.UtilizationPercent < minUtil {
			minUtil = b.UtilizationPercent
		}
		sumFees.Add(sumFees, new(big.Float).SetInt(b.BaseFeeWei))
	}

	n := float64(len(blocks))

	// Average base fee in gwei: mean of wei values divided by 1e9. big.Float
	// keeps precision while summing; the final value is well within float64
	// range for display.
	avgFeeGwei, _ := new(big.Float).Quo(sumFees, big.NewFloat(n*1e9)).Float64()

	return Summary{
		Valid:          true,
		AvgUtilization: Round2(sumUtil / n),
		MaxUtilization: Round2(maxUtil),
		MinUtilization: Round2(minUtil),
		AvgBaseFeeGwei: Round3(avgFeeGwei),
		TotalBlocks:    len(blocks),
	}
}
