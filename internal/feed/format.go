package feed

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

const (
	explorerAccountURL = "https://solscan.io/account/"
	TimeLayout         = "2006-01-02 15:04:05"
)

// FormatAddress shortens an address to its first and last four characters.
func FormatAddress(addr string) string {
	if len(addr) <= 8 {
		return addr
	}
	return addr[:4] + "..." + addr[len(addr)-4:]
}

// FormatMarketCap renders a market cap with one decimal and a K/M suffix.
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// FormatAmount renders a token amount with thousands separators and at most
// three fractional digits.
func FormatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 3)
}

func ExplorerURL(addr string) string {
	return explorerAccountURL + addr
}

// Link is a labelled outbound URL.
type Link struct {
	Label string
	URL   string
}

// TokenLinks returns launch-platform and chart links for pump tokens and a
// chart link only for everything else.
func TokenLinks(t TokenTransfer) []Link {
	if t.IsPumpToken && t.PumpLinks != nil {
		return []Link{
			{Label: "pump.fun", URL: t.PumpLinks.PumpFun},
			{Label: "dexscreener", URL: t.PumpLinks.Dexscreener},
		}
	}
	return []Link{{Label: "dexscreener", URL: token.DexscreenerURL(t.TokenAddress)}}
}

// FormatLinkLabels renders links as "[pump.fun] [dexscreener]".
func FormatLinkLabels(links []Link) string {
	labels := make([]string, len(links))
	for i, l := range links {
		labels[i] = "[" + l.Label + "]"
	}
	return strings.Join(labels, " ")
}

// FormatTokenLabel renders "Name (SYMBOL)" with the market cap appended when known.
func FormatTokenLabel(t TokenTransfer) string {
	label := fmt.Sprintf("%s (%s)", t.TokenName, t.TokenSymbol)
	if t.MarketCap > 0 {
		label += " at market cap $" + FormatMarketCap(t.MarketCap)
	}
	return label
}

// Describe renders a transfer as a single line of text.
func Describe(t TokenTransfer) string {
	return fmt.Sprintf("%s transferred %s %s %s",
		FormatAddress(t.Buyer),
		FormatAmount(t.Amount),
		FormatTokenLabel(t),
		FormatLinkLabels(TokenLinks(t)))
}
