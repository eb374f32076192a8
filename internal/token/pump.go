// internal/token/pump.go
package token

import "strings"

const (
	pumpFunCoinURL    = "https://pump.fun/coin/"
	dexscreenerURL    = "https://dexscreener.com/solana/"
	pumpAddressSuffix = "pump"
)

// PumpLinks - ссылки на страницы токена, запущенного через pump.fun
type PumpLinks struct {
	PumpFun     string
	Dexscreener string
}

// IsPumpToken определяет токены pump.fun по суффиксу адреса (без учёта регистра)
func IsPumpToken(mint string) bool {
	return strings.HasSuffix(strings.ToLower(mint), pumpAddressSuffix)
}

// NewPumpLinks строит ссылки для pump-токена
func NewPumpLinks(mint string) *PumpLinks {
	return &PumpLinks{
		PumpFun:     pumpFunCoinURL + mint,
		Dexscreener: DexscreenerURL(mint),
	}
}

// DexscreenerURL возвращает ссылку на график токена
func DexscreenerURL(mint string) string {
	return dexscreenerURL + mint
}
