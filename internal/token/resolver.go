// internal/token/resolver.go
package token

import (
	"context"

	"go.uber.org/zap"
)

// AssetLookup возвращает имя и символ токена
type AssetLookup interface {
	Lookup(ctx context.Context, mint string) (name, symbol string, err error)
}

// MarketCapLookup возвращает рыночную капитализацию токена
type MarketCapLookup interface {
	MarketCap(ctx context.Context, mint string) (float64, error)
}

// Resolver собирает метаданные токена из двух независимых источников
// и кэширует результат, включая заглушки.
type Resolver struct {
	cache  *Cache
	assets AssetLookup
	prices MarketCapLookup
	logger *zap.Logger
}

// NewResolver создаёт Resolver. Кэш передаётся извне и живёт весь процесс.
func NewResolver(cache *Cache, assets AssetLookup, prices MarketCapLookup, logger *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	return &Resolver{
		cache:  cache,
		assets: assets,
		prices: prices,
		logger: logger.Named("token-resolver"),
	}
}

// Resolve никогда не возвращает ошибку: сбой сервиса метаданных даёт
// "Unknown Token"/"UNKNOWN", сбой сервиса цен даёт нулевую капитализацию.
func (r *Resolver) Resolve(ctx context.Context, mint string) Metadata {
	if md, ok := r.cache.Get(mint); ok {
		r.logger.Debug("Token metadata from cache",
			zap.String("mint", mint),
			zap.String("symbol", md.Symbol))
		return md
	}

	md := unknownMetadata()

	name, symbol, err := r.assets.Lookup(ctx, mint)
	if err != nil {
		r.logger.Warn("Failed to fetch token metadata",
			zap.String("mint", mint),
			zap.Error(err))
	} else {
		md.Name, md.Symbol = name, symbol
		if md.Name == "" {
			md.Name = UnknownName
		}
		if md.Symbol == "" {
			md.Symbol = UnknownSymbol
		}
	}

	marketCap, err := r.prices.MarketCap(ctx, mint)
	if err != nil {
		r.logger.Warn("Failed to fetch token market cap",
			zap.String("mint", mint),
			zap.Error(err))
	} else {
		md.MarketCap = marketCap
	}

	r.cache.Set(mint, md)

	r.logger.Debug("Token metadata resolved",
		zap.String("mint", mint),
		zap.String("name", md.Name),
		zap.String("symbol", md.Symbol),
		zap.Float64("market_cap", md.MarketCap))

	return md
}
