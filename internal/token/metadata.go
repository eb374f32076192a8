// internal/token/metadata.go
package token

import (
	"sync"
	"sync/atomic"
)

const (
	UnknownName   = "Unknown Token"
	UnknownSymbol = "UNKNOWN"
)

// Metadata хранит сведения о токене, которые показываются рядом с переводом
type Metadata struct {
	Name      string
	Symbol    string
	MarketCap float64
}

// unknownMetadata возвращает заглушку для токенов без метаданных
func unknownMetadata() Metadata {
	return Metadata{Name: UnknownName, Symbol: UnknownSymbol}
}

// Cache - потокобезопасный кэш метаданных по адресу токена.
// Создаётся один раз на процесс и передаётся в Resolver.
// Записи не инвалидируются, повторная запись перезаписывает значение.
type Cache struct {
	entries sync.Map
	size    atomic.Int64
}

// NewCache создаёт пустой кэш
func NewCache() *Cache {
	return &Cache{}
}

// Get возвращает метаданные токена, если они уже есть в кэше
func (c *Cache) Get(mint string) (Metadata, bool) {
	value, ok := c.entries.Load(mint)
	if !ok {
		return Metadata{}, false
	}
	return value.(Metadata), true
}

// Set сохраняет метаданные токена
func (c *Cache) Set(mint string, md Metadata) {
	if _, loaded := c.entries.Swap(mint, md); !loaded {
		c.size.Add(1)
	}
}

// Len возвращает количество токенов в кэше
func (c *Cache) Len() int {
	return int(c.size.Load())
}
