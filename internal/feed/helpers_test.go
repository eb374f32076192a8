package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rovshanmuradov/transfer-feed/internal/blockchain/solbc"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

type fakeChain struct {
	mu         sync.Mutex
	signatures []string
	sigErr     error
	txs        map[string]*solbc.ParsedTransaction
	txErrs     map[string]error
	txCalls    int
	txTimes    []time.Time
	sigLimit   int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		txs:    make(map[string]*solbc.ParsedTransaction),
		txErrs: make(map[string]error),
	}
}

func (f *fakeChain) GetSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sigLimit = limit
	if f.sigErr != nil {
		return nil, f.sigErr
	}
	if len(f.signatures) > limit {
		return f.signatures[:limit], nil
	}
	return f.signatures, nil
}

func (f *fakeChain) GetParsedTransaction(ctx context.Context, sig string) (*solbc.ParsedTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	f.txTimes = append(f.txTimes, time.Now())
	if err := f.txErrs[sig]; err != nil {
		return nil, err
	}
	return f.txs[sig], nil
}

func (f *fakeChain) add(sig string, tx *solbc.ParsedTransaction) {
	f.signatures = append(f.signatures, sig)
	if tx != nil {
		tx.Signature = sig
		f.txs[sig] = tx
	}
}

func validTx(mint, buyer string, amount float64, at time.Time) *solbc.ParsedTransaction {
	return &solbc.ParsedTransaction{
		BlockTime: &at,
		PostTokenBalances: []solbc.TokenBalance{
			{Mint: mint, UIAmount: &amount, HasAmount: true},
		},
		AccountKeys: []string{buyer, "11111111111111111111111111111111"},
	}
}

type staticResolver struct {
	mu    sync.Mutex
	md    token.Metadata
	calls []string
	times []time.Time
}

func (r *staticResolver) Resolve(ctx context.Context, mint string) token.Metadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, mint)
	r.times = append(r.times, time.Now())
	return r.md
}

type countingLimiter struct {
	mu    sync.Mutex
	waits int
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	l.waits++
	l.mu.Unlock()
	return ctx.Err()
}

func transfers(sigs ...string) []TokenTransfer {
	out := make([]TokenTransfer, len(sigs))
	for i, s := range sigs {
		out[i] = TokenTransfer{Signature: s}
	}
	return out
}

func sigRange(prefix string, from, to int) []string {
	var out []string
	for i := from; i < to; i++ {
		out = append(out, fmt.Sprintf("%s%02d", prefix, i))
	}
	return out
}

func signaturesOf(list []TokenTransfer) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Signature
	}
	return out
}
