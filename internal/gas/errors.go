package gas

import "fmt"

// ConnectivityError means the endpoint failed the initial liveness probe
// before any analysis started. Callers exit with status 1.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("RPC connection failed (%s): %v", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// FetchError means a block fetch failed mid-analysis: missing block,
// malformed response, timeout, or disconnect. The whole run is discarded and
// callers exit with status 2. Never retried.
type FetchError struct {
	BlockArg string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch block %s: %v", e.BlockArg, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
