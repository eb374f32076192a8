// internal/token/asset.go
package token

import (
	"context"
	"fmt"

	"github.com/rovshanmuradov/transfer-feed/internal/fetch"
)

const assetRequestID = "token-metadata"

// JSONPoster - часть fetch.Fetcher, нужная клиенту метаданных
type JSONPoster interface {
	PostJSON(ctx context.Context, url string, body interface{}, dst interface{}) error
}

// JSONGetter - часть fetch.Fetcher, нужная клиенту цен
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, dst interface{}) error
}

type assetRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
}

type assetResponse struct {
	Result *struct {
		Content struct {
			Metadata struct {
				Name   string `json:"name"`
				Symbol string `json:"symbol"`
			} `json:"metadata"`
		} `json:"content"`
	} `json:"result"`
	Error *RPCError `json:"error"`
}

// AssetClient запрашивает имя и символ токена через DAS метод getAsset
type AssetClient struct {
	url     string
	fetcher JSONPoster
}

// NewAssetClient создаёт клиент метаданных для заданного endpoint
func NewAssetClient(url string, fetcher JSONPoster) *AssetClient {
	return &AssetClient{url: url, fetcher: fetcher}
}

// Lookup возвращает имя и символ токена
func (c *AssetClient) Lookup(ctx context.Context, mint string) (string, string, error) {
	req := assetRequest{
		JSONRPC: "2.0",
		ID:      assetRequestID,
		Method:  "getAsset",
		Params:  map[string]string{"id": mint},
	}

	var resp assetResponse
	if err := c.fetcher.PostJSON(ctx, c.url, req, &resp); err != nil {
		return "", "", fmt.Errorf("getAsset %s: %w", mint, err)
	}
	if resp.Error != nil {
		return "", "", fmt.Errorf("getAsset %s: %w", mint, resp.Error)
	}
	if resp.Result == nil {
		return "", "", fmt.Errorf("getAsset %s: %w", mint, ErrNoMetadata)
	}

	md := resp.Result.Content.Metadata
	if md.Name == "" && md.Symbol == "" {
		return "", "", fmt.Errorf("getAsset %s: %w", mint, ErrNoMetadata)
	}
	return md.Name, md.Symbol, nil
}

var _ JSONPoster = (*fetch.Fetcher)(nil)
