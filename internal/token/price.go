// internal/token/price.go
package token

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rovshanmuradov/transfer-feed/internal/fetch"
)

type priceResponse struct {
	Data map[string]struct {
		ID        string  `json:"id"`
		Price     float64 `json:"price"`
		MarketCap float64 `json:"marketCap"`
	} `json:"data"`
}

// PriceClient получает рыночную капитализацию токена из сервиса цен
type PriceClient struct {
	baseURL string
	fetcher JSONGetter
}

// NewPriceClient создаёт клиент для сервиса цен
func NewPriceClient(baseURL string, fetcher JSONGetter) *PriceClient {
	return &PriceClient{baseURL: baseURL, fetcher: fetcher}
}

// MarketCap возвращает капитализацию токена; 0, если сервис её не сообщил
func (c *PriceClient) MarketCap(ctx context.Context, mint string) (float64, error) {
	endpoint, err := c.priceURL(mint)
	if err != nil {
		return 0, err
	}

	var resp priceResponse
	if err := c.fetcher.GetJSON(ctx, endpoint, &resp); err != nil {
		return 0, fmt.Errorf("price %s: %w", mint, err)
	}

	// Неизвестный сервису токен не ошибка: капитализация просто не показывается
	return resp.Data[mint].MarketCap, nil
}

func (c *PriceClient) priceURL(mint string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid price url: %w", err)
	}
	q := u.Query()
	q.Set("ids", mint)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var _ JSONGetter = (*fetch.Fetcher)(nil)
