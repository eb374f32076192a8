// internal/blockchain/solbc/types.go
package solbc

import "time"

// TokenProgramID - адрес SPL Token программы, по которому собираются подписи
const TokenProgramID = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"

// TokenBalance - баланс токена после выполнения транзакции
type TokenBalance struct {
	Mint string
	// UIAmount равен nil, если узел не вернул uiAmount
	UIAmount *float64
	// HasAmount показывает, присутствовал ли uiTokenAmount в ответе
	HasAmount bool
}

// ParsedTransaction содержит только те поля разобранной транзакции,
// которые нужны сборщику переводов
type ParsedTransaction struct {
	Signature         string
	BlockTime         *time.Time
	PostTokenBalances []TokenBalance
	AccountKeys       []string
}
