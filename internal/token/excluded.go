// internal/token/excluded.go
package token

// Ликвидные обёртки SOL не интересны как "новые" токены и не показываются
var excludedTokens = map[string]string{
	"So11111111111111111111111111111111111111112":  "Wrapped SOL",
	"7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj": "Lido Staked SOL",
	"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So":  "Marinade Staked SOL",
	"JitoSoLz14r4Hi6iQKiHJGPNgbzJqpsFvukvFvopzm":   "Jito Staked SOL",
	"bSo13r4TkiE4KumL71LsHTPpL2euBYLFx6h9HP3piy1":  "Blazestake Staked SOL",
	"7Q2afV64in6N6SeZsNECvaCrRpRQinsuX7qpevqRhKxw": "Jpool Staked SOL",
}

// IsExcluded сообщает, исключён ли токен из ленты
func IsExcluded(mint string) bool {
	_, ok := excludedTokens[mint]
	return ok
}
