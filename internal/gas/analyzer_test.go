package gas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/casks-mutters/zk-gas-soundness/internal/rpc"
)

// fakeChain serves eth_blockNumber and eth_getBlockByNumber for a synthetic
// chain of head+1 blocks. failAt (when non-nil) makes one specific block
// return an RPC error, to exercise mid-run abort.
type fakeChain struct {
	head   uint64
	failAt *uint64
}

func (f *fakeChain) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}

		resp := rpc.Response{JSONRPC: "2.0", ID: req.ID}

		switch req.Method {
		case "eth_blockNumber":
			resp.Result = json.RawMessage(fmt.Sprintf(`"0x%x"`, f.head))

		case "eth_getBlockByNumber":
			arg, _ := req.Params[0].(string)
			num, err := rpc.ParseHexUint64(arg)
			if arg == "latest" {
				num, err = f.head, nil
			}
			switch {
			case err != nil || num > f.head:
				resp.Result = json.RawMessage(`null`)
			case f.failAt != nil && num == *f.failAt:
				resp.Error = &rpc.RPCError{Code: -32000, Message: "header not found"}
			default:
				resp.Result = json.RawMessage(fmt.Sprintf(`{
					"number": "0x%x",
					"hash": "0xaa%x",
					"parentHash": "0xaa%x",
					"timestamp": "0x%x",
					"gasUsed": "0xe4e1c0",
					"gasLimit": "0x1c9c380",
					"baseFeePerGas": "0x3b9aca00"
				}`, num, num, num-1, 1700000000+num*12))
			}

		default:
			resp.Error = &rpc.RPCError{Code: -32601, Message: "method not found"}
		}

		json.NewEncoder(w).Encode(resp)
	}
}

type progressEvent struct {
	blockNumber      uint64
	processed, total int
}

func newTestAnalyzer(t *testing.T, chain *fakeChain, workers int, events *[]progressEvent) (*Analyzer, func()) {
	t.Helper()
	srv := httptest.NewServer(chain.handler(t))

	sink := ProgressFunc(func(blockNumber uint64, processed, total int) {
		*events = append(*events, progressEvent{blockNumber, processed, total})
	})

	client := rpc.NewClient(srv.URL, 5*time.Second)
	return NewAnalyzer(NewFetcher(client), workers, sink), srv.Close
}

func TestAnalyzeRange(t *testing.T) {
	var events []progressEvent
	analyzer, done := newTestAnalyzer(t, &fakeChain{head: 1000}, 1, &events)
	defer done()

	blocks, err := analyzer.Analyze(context.Background(), 3)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(blocks) != 3 {
		t.Fatalf("len(blocks) = %d, want 3", len(blocks))
	}
	for i, want := range []uint64{998, 999, 1000} {
		if blocks[i].BlockNumber != want {
			t.Errorf("blocks[%d].BlockNumber = %d, want %d", i, blocks[i].BlockNumber, want)
		}
	}

	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}
	for i, e := range events {
		if e.processed != i+1 || e.total != 3 {
			t.Errorf("events[%d] = %d/%d, want %d/3", i, e.processed, e.total, i+1)
		}
		if e.blockNumber != 998+uint64(i) {
			t.Errorf("events[%d].blockNumber = %d, want %d", i, e.blockNumber, 998+uint64(i))
		}
	}
}

func TestAnalyzeAscendingAdjacent(t *testing.T) {
	var events []progressEvent
	analyzer, done := newTestAnalyzer(t, &fakeChain{head: 1000}, 1, &events)
	defer done()

	blocks, err := analyzer.Analyze(context.Background(), 10)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for i := 1; i < len(blocks); i++ {
		if blocks[i].BlockNumber != blocks[i-1].BlockNumber+1 {
			t.Fatalf("blocks[%d].BlockNumber = %d, not adjacent to %d",
				i, blocks[i].BlockNumber, blocks[i-1].BlockNumber)
		}
	}
	if blocks[len(blocks)-1].BlockNumber != 1000 {
		t.Errorf("last block = %d, want head 1000", blocks[len(blocks)-1].BlockNumber)
	}
}

func TestAnalyzeClampsToGenesis(t *testing.T) {
	var events []progressEvent
	analyzer, done := newTestAnalyzer(t, &fakeChain{head: 5}, 1, &events)
	defer done()

	blocks, err := analyzer.Analyze(context.Background(), 10)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// Only blocks 0..5 exist; the range is clamped and the progress total
	// reflects the clamped count.
	if len(blocks) != 6 {
		t.Fatalf("len(blocks) = %d, want 6", len(blocks))
	}
	if blocks[0].BlockNumber != 0 || blocks[5].BlockNumber != 5 {
		t.Errorf("range = [%d, %d], want [0, 5]", blocks[0].BlockNumber, blocks[5].BlockNumber)
	}
	if len(events) != 6 || events[0].total != 6 {
		t.Errorf("progress total = %d over %d events, want 6 over 6", events[0].total, len(events))
	}
}

func TestAnalyzeAbortsOnFetchFailure(t *testing.T) {
	failAt := uint64(999)
	var events []progressEvent
	analyzer, done := newTestAnalyzer(t, &fakeChain{head: 1000, failAt: &failAt}, 1, &events)
	defer done()

	blocks, err := analyzer.Analyze(context.Background(), 3)
	if err == nil {
		t.Fatal("Analyze() should fail when a block fetch fails")
	}
	if blocks != nil {
		t.Error("partial results must be discarded on failure")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Errorf("error = %T, want *FetchError", err)
	}
}

func TestAnalyzeConcurrentPreservesOrder(t *testing.T) {
	var events []progressEvent
	analyzer, done := newTestAnalyzer(t, &fakeChain{head: 1000}, 4, &events)
	defer done()

	blocks, err := analyzer.Analyze(context.Background(), 20)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(blocks) != 20 {
		t.Fatalf("len(blocks) = %d, want 20", len(blocks))
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i].BlockNumber != blocks[i-1].BlockNumber+1 {
			t.Fatalf("concurrent fetch broke ordering at index %d", i)
		}
	}

	// Completion order is nondeterministic but the processed counter
	// must still count 1..20 exactly once each.
	if len(events) != 20 {
		t.Fatalf("len(events) = %d, want 20", len(events))
	}
	seen := make(map[int]bool)
	for _, e := range events {
		if e.total != 20 {
			t.Errorf("event total = %d, want 20", e.total)
		}
		if seen[e.processed] {
			t.Errorf("processed %d reported twice", e.processed)
		}
		seen[e.processed] = true
	}
}

func TestAnalyzeHeadQueryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := rpc.NewClient(srv.URL, time.Second)
	analyzer := NewAnalyzer(NewFetcher(client), 1, nil)

	var fetchErr *FetchError
	if _, err := analyzer.Analyze(context.Background(), 3); !errors.As(err, &fetchErr) {
		t.Errorf("head query failure should be a *FetchError, got %T", err)
	}
}
