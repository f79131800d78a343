package gas

import (
	"context"
	"fmt"

	"github.com/casks-mutters/zk-gas-soundness/internal/rpc"
)

// Fetcher retrieves single block headers and derives their gas metrics.
type Fetcher struct {
	client *rpc.Client
}

func NewFetcher(client *rpc.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch issues exactly one eth_getBlockByNumber call for the given identifier
// ("latest" or a block number) and returns its derived metrics. Any transport
// failure, missing block, or malformed header is a FetchError; nothing is
// retried.
func (f *Fetcher) Fetch(ctx context.Context, blockArg string) (BlockMetrics, error) {
	blockArg = rpc.NormalizeBlockArg(blockArg)

	block, err := f.client.GetBlock(ctx, blockArg)
	if err != nil {
		return BlockMetrics{}, &FetchError{BlockArg: blockArg, Err: err}
	}

	m, err := MetricsFromBlock(block)
	if err != nil {
		return BlockMetrics{}, &FetchError{BlockArg: blockArg, Err: fmt.Errorf("malformed block: %w", err)}
	}

	return m, nil
}

// FetchNumber is Fetch for a specific block height.
func (f *Fetcher) FetchNumber(ctx context.Context, number uint64) (BlockMetrics, error) {
	return f.Fetch(ctx, fmt.Sprintf("0x%x", number))
}
