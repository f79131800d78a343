package gas

// ProgressSink receives one notification per completed block fetch. It is a
// side channel only: nothing the analyzer returns depends on it, which keeps
// the core testable independently of console formatting.
type ProgressSink interface {
	Report(blockNumber uint64, processed, total int)
}

// ProgressFunc adapts a function to the ProgressSink interface.
type ProgressFunc func(blockNumber uint64, processed, total int)

func (f ProgressFunc) Report(blockNumber uint64, processed, total int) {
	f(blockNumber, processed, total)
}

// NopProgress discards progress notifications.
var NopProgress ProgressSink = ProgressFunc(func(uint64, int, int) {})
