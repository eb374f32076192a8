package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/transfer-feed/internal/blockchain/solbc"
	"github.com/rovshanmuradov/transfer-feed/internal/fetch"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

const (
	testBuyer = "7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj"
	pumpMint  = "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6Rpump"
	plainMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func newTestCollector(chain ChainClient, resolver MetadataResolver) *Collector {
	return NewCollector(chain, resolver, CollectorOptions{}, zap.NewNop())
}

func TestCollectorBuildsTransfers(t *testing.T) {
	at := time.Unix(1700000000, 0)
	chain := newFakeChain()
	chain.add("sig-pump", validTx(pumpMint, testBuyer, 42.5, at))
	chain.add("sig-plain", validTx(plainMint, testBuyer, 7, at))

	resolver := &staticResolver{md: token.Metadata{Name: "Serum", Symbol: "SRM", MarketCap: 2500}}
	got, err := newTestCollector(chain, resolver).Collect(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 10, chain.sigLimit, "collector over-fetches 2n signatures")

	first := got[0]
	assert.Equal(t, "sig-pump", first.Signature)
	assert.Equal(t, pumpMint, first.TokenAddress)
	assert.Equal(t, "Serum", first.TokenName)
	assert.Equal(t, "SRM", first.TokenSymbol)
	assert.Equal(t, 42.5, first.Amount)
	assert.Equal(t, 2500.0, first.MarketCap)
	assert.Equal(t, testBuyer, first.Buyer)
	assert.Equal(t, at.UTC(), first.Timestamp)
	assert.True(t, first.IsPumpToken)
	require.NotNil(t, first.PumpLinks)
	assert.Equal(t, "https://pump.fun/coin/"+pumpMint, first.PumpLinks.PumpFun)

	assert.False(t, got[1].IsPumpToken)
	assert.Nil(t, got[1].PumpLinks)
}

func TestCollectorSkipsInvalidRecords(t *testing.T) {
	at := time.Unix(1700000000, 0)
	chain := newFakeChain()

	chain.add("missing", nil)
	chain.add("no-balances", &solbc.ParsedTransaction{BlockTime: &at})
	noTime := validTx(plainMint, testBuyer, 1, at)
	noTime.BlockTime = nil
	chain.add("no-time", noTime)
	noAmount := validTx(plainMint, testBuyer, 1, at)
	noAmount.PostTokenBalances[0].HasAmount = false
	chain.add("no-amount", noAmount)
	chain.add("excluded", validTx("So11111111111111111111111111111111111111112", testBuyer, 1, at))
	noKeys := validTx(plainMint, testBuyer, 1, at)
	noKeys.AccountKeys = nil
	chain.add("no-keys", noKeys)
	chain.add("rpc-error", nil)
	chain.txErrs["rpc-error"] = errors.New("node unavailable")
	chain.add("good", validTx(plainMint, testBuyer, 1, at))

	resolver := &staticResolver{md: token.Metadata{Name: "X", Symbol: "X"}}
	got, err := newTestCollector(chain, resolver).Collect(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, signaturesOf(got))
	assert.Equal(t, []string{plainMint}, resolver.calls, "excluded and broken records never reach the resolver")
}

func TestCollectorNilAmountIsZero(t *testing.T) {
	at := time.Unix(1700000000, 0)
	tx := validTx(plainMint, testBuyer, 1, at)
	tx.PostTokenBalances[0].UIAmount = nil
	chain := newFakeChain()
	chain.add("sig", tx)

	got, err := newTestCollector(chain, &staticResolver{}).Collect(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Amount)
}

func TestCollectorStopsAtLimit(t *testing.T) {
	at := time.Unix(1700000000, 0)
	chain := newFakeChain()
	for _, sig := range sigRange("sig", 0, 10) {
		chain.add(sig, validTx(plainMint, testBuyer, 1, at))
	}

	got, err := newTestCollector(chain, &staticResolver{}).Collect(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"sig00", "sig01", "sig02"}, signaturesOf(got))
	assert.Equal(t, 3, chain.txCalls)
}

func TestCollectorTopLevelFailureYieldsEmptyList(t *testing.T) {
	chain := newFakeChain()
	chain.sigErr = errors.New("rpc unreachable")

	got, err := newTestCollector(chain, &staticResolver{}).Collect(context.Background(), 20)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectorReturnsContextError(t *testing.T) {
	chain := newFakeChain()
	chain.add("sig", validTx(plainMint, testBuyer, 1, time.Now()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCollector(chain, &staticResolver{}).Collect(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectorPacesEveryCall(t *testing.T) {
	at := time.Unix(1700000000, 0)
	chain := newFakeChain()
	chain.add("a", validTx(plainMint, testBuyer, 1, at))
	chain.add("excluded", validTx("mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So", testBuyer, 1, at))
	chain.add("b", validTx(pumpMint, testBuyer, 1, at))

	txLimiter := &countingLimiter{}
	mdLimiter := &countingLimiter{}
	c := NewCollector(chain, &staticResolver{}, CollectorOptions{
		TxLimiter:       txLimiter,
		MetadataLimiter: mdLimiter,
	}, zap.NewNop())

	got, err := c.Collect(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 4, txLimiter.waits, "one wait for the listing and one per transaction")
	assert.Equal(t, 2, mdLimiter.waits, "one wait per accepted record")
}

func TestCollectorDelaysMetadataAfterTransactionFetch(t *testing.T) {
	const (
		txInterval    = 40 * time.Millisecond
		metadataDelay = 20 * time.Millisecond
	)
	at := time.Unix(1700000000, 0)
	chain := newFakeChain()
	for i := 0; i < 4; i++ {
		chain.add(fmt.Sprintf("sig%d", i), validTx(pumpMint, testBuyer, 1, at))
	}

	resolver := &staticResolver{}
	c := NewCollector(chain, resolver, CollectorOptions{
		TxLimiter:       NewIntervalLimiter(txInterval),
		MetadataLimiter: Pause(metadataDelay),
	}, zap.NewNop())

	got, err := c.Collect(context.Background(), 4)

	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Len(t, chain.txTimes, 4)
	require.Len(t, resolver.times, 4)
	for i := range resolver.times {
		gap := resolver.times[i].Sub(chain.txTimes[i])
		assert.GreaterOrEqual(t, gap, metadataDelay, "record %d", i)
	}
	for i := 1; i < len(chain.txTimes); i++ {
		gap := chain.txTimes[i].Sub(chain.txTimes[i-1])
		assert.GreaterOrEqual(t, gap, txInterval-5*time.Millisecond, "transaction %d", i)
	}
}

func TestPauseHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Pause(time.Hour).Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
	assert.NoError(t, Pause(0).Wait(context.Background()))
}

func TestIntervalLimiterPacing(t *testing.T) {
	l := NewIntervalLimiter(20 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)

	unlimited := NewIntervalLimiter(0)
	start = time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, unlimited.Wait(ctx))
	}
	assert.Less(t, time.Since(start), time.Second)
}

// 40 signatures, 10 usable, limit 20: ten records with placeholder metadata
// when the metadata service is down.
func TestCollectorEndToEndWithFailingMetadata(t *testing.T) {
	var metadataHits, priceHits int32
	metadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&metadataHits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer metadata.Close()
	prices := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&priceHits, 1)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer prices.Close()

	at := time.Unix(1700000000, 0)
	chain := newFakeChain()
	for i := 0; i < 40; i++ {
		sig := fmt.Sprintf("sig%02d", i)
		switch {
		case i%4 == 0:
			mint := fmt.Sprintf("Mint%02dxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxpump", i)
			chain.add(sig, validTx(mint, testBuyer, float64(i), at))
		case i%4 == 1:
			chain.add(sig, validTx("JitoSoLz14r4Hi6iQKiHJGPNgbzJqpsFvukvFvopzm", testBuyer, 1, at))
		case i%4 == 2:
			chain.add(sig, &solbc.ParsedTransaction{BlockTime: &at})
		default:
			chain.add(sig, nil)
		}
	}

	f := fetch.New(&http.Client{Timeout: time.Second}, fetch.Options{Retries: 3, BaseDelay: 0}, zap.NewNop())
	resolver := token.NewResolver(token.NewCache(),
		token.NewAssetClient(metadata.URL, f),
		token.NewPriceClient(prices.URL, f),
		zap.NewNop())
	c := NewCollector(chain, resolver, CollectorOptions{
		TxLimiter:       NewIntervalLimiter(time.Microsecond),
		MetadataLimiter: Pause(time.Microsecond),
	}, zap.NewNop())

	got, err := c.Collect(context.Background(), 20)

	require.NoError(t, err)
	require.Len(t, got, 10)
	for _, tr := range got {
		assert.Equal(t, token.UnknownName, tr.TokenName)
		assert.Equal(t, token.UnknownSymbol, tr.TokenSymbol)
		assert.Zero(t, tr.MarketCap)
		assert.True(t, tr.IsPumpToken)
	}
	assert.Equal(t, 40, chain.txCalls)
	assert.Equal(t, int32(30), atomic.LoadInt32(&metadataHits), "three attempts per distinct token")
	assert.Equal(t, int32(10), atomic.LoadInt32(&priceHits))
}
