package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
	"github.com/stretchr/testify/assert"
)

func sampleTransfer() feed.TokenTransfer {
	mint := "7GCihgDB8fe6KNjn2MYtkzZcRjQy3t9GHdC8uHYmW2hrpump"
	return feed.TokenTransfer{
		Signature:    "sig-1",
		Timestamp:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TokenAddress: mint,
		TokenName:    "Popcat",
		TokenSymbol:  "POP",
		Amount:       1234.5,
		MarketCap:    2_500_000,
		Buyer:        "BuyerAddress1111111111111111111111111111XYZ",
		IsPumpToken:  true,
		PumpLinks:    token.NewPumpLinks(mint),
	}
}

func TestPlainRendererStates(t *testing.T) {
	var out bytes.Buffer
	r := NewPlainRenderer(&out)

	r.Publish(feed.State{Status: feed.StatusLoading})
	r.Publish(feed.State{Status: feed.StatusSuccess, Transfers: []feed.TokenTransfer{sampleTransfer()}, Changed: true, UpdatedAt: time.Now()})

	text := out.String()
	assert.Contains(t, text, "Updating...")
	assert.Contains(t, text, "Buye...1XYZ transferred 1,234.5 Popcat (POP) at market cap $2.5M [pump.fun] [dexscreener]")
}

func TestPlainRendererSkipsUnchangedList(t *testing.T) {
	var out bytes.Buffer
	r := NewPlainRenderer(&out)
	transfers := []feed.TokenTransfer{sampleTransfer()}

	r.Publish(feed.State{Status: feed.StatusSuccess, Transfers: transfers, Changed: true})
	r.Publish(feed.State{Status: feed.StatusSuccess, Transfers: transfers, Changed: false})

	assert.Equal(t, 1, strings.Count(out.String(), "transferred"))
}

func TestPlainRendererEmptyAndError(t *testing.T) {
	var out bytes.Buffer
	r := NewPlainRenderer(&out)

	r.Publish(feed.State{Status: feed.StatusSuccess})
	r.Publish(feed.State{Status: feed.StatusError, Err: feed.LoadErrorMessage})

	assert.Contains(t, out.String(), "No transfers found")
	assert.Contains(t, out.String(), feed.LoadErrorMessage)
}
