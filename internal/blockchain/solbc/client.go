// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// Определение ошибок
var (
	ErrInvalidAddress   = errors.New("invalid account address")
	ErrInvalidSignature = errors.New("invalid transaction signature")
)

// Client - тонкий адаптер для чтения истории транзакций Solana через solana-go.
type Client struct {
	rpc        *rpc.Client
	commitment rpc.CommitmentType
	logger     *zap.Logger
}

// NewClient создаёт новый клиент, принимая RPC URL и логгер через dependency injection.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:        rpc.New(rpcURL),
		commitment: rpc.CommitmentConfirmed,
		logger:     logger.Named("solbc-client"),
	}
}

// GetSignatures возвращает до limit последних подписей транзакций для адреса,
// от новых к старым.
func (c *Client) GetSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	account, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidAddress, address, err)
	}

	opts := &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.commitment,
	}

	result, err := c.rpc.GetSignaturesForAddressWithOpts(ctx, account, opts)
	if err != nil {
		c.logger.Debug("GetSignaturesForAddress error",
			zap.String("address", address),
			zap.Int("limit", limit),
			zap.Error(err))
		return nil, err
	}

	signatures := make([]string, 0, len(result))
	for _, sig := range result {
		if sig == nil {
			continue
		}
		signatures = append(signatures, sig.Signature.String())
	}
	return signatures, nil
}

// GetParsedTransaction получает транзакцию в формате jsonParsed.
// Возвращает nil без ошибки, если узел не знает такую транзакцию.
func (c *Client) GetParsedTransaction(ctx context.Context, signature string) (*ParsedTransaction, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSignature, signature, err)
	}

	maxVersion := uint64(0)
	result, err := c.rpc.GetParsedTransaction(ctx, sig, &rpc.GetParsedTransactionOpts{
		Commitment:                     c.commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		c.logger.Debug("GetParsedTransaction error",
			zap.String("signature", signature),
			zap.Error(err))
		return nil, err
	}

	return convertParsedTransaction(signature, result), nil
}

// convertParsedTransaction переводит ответ solana-go в доменную структуру
func convertParsedTransaction(signature string, result *rpc.GetParsedTransactionResult) *ParsedTransaction {
	if result == nil {
		return nil
	}

	tx := &ParsedTransaction{Signature: signature}

	if result.BlockTime != nil {
		blockTime := time.Unix(int64(*result.BlockTime), 0).UTC()
		tx.BlockTime = &blockTime
	}

	if result.Meta != nil {
		for _, balance := range result.Meta.PostTokenBalances {
			tb := TokenBalance{}
			if !balance.Mint.IsZero() {
				tb.Mint = balance.Mint.String()
			}
			if balance.UiTokenAmount != nil {
				tb.HasAmount = true
				tb.UIAmount = balance.UiTokenAmount.UiAmount
			}
			tx.PostTokenBalances = append(tx.PostTokenBalances, tb)
		}
	}

	if result.Transaction != nil {
		for _, key := range result.Transaction.Message.AccountKeys {
			tx.AccountKeys = append(tx.AccountKeys, key.PublicKey.String())
		}
	}

	return tx
}
