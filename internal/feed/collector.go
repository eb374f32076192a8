package feed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/transfer-feed/internal/blockchain/solbc"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

var (
	ErrNoTokenBalance = errors.New("transaction has no post token balances")
	ErrNoBlockTime    = errors.New("transaction has no block time")
	ErrNoAmount       = errors.New("token balance has no mint or amount")
	ErrNoBuyer        = errors.New("transaction has no account keys")
	errExcluded       = errors.New("token is excluded")
)

// ChainClient is the part of solbc.Client the collector reads from.
type ChainClient interface {
	GetSignatures(ctx context.Context, address string, limit int) ([]string, error)
	GetParsedTransaction(ctx context.Context, signature string) (*solbc.ParsedTransaction, error)
}

// MetadataResolver never fails; it degrades to placeholder metadata.
type MetadataResolver interface {
	Resolve(ctx context.Context, mint string) token.Metadata
}

// CollectorOptions configures the program address and pacing.
type CollectorOptions struct {
	// Program is the address whose signatures are listed.
	Program string
	// TxLimiter paces signature listing and every transaction lookup.
	TxLimiter Limiter
	// MetadataLimiter runs right after the transaction lookup and before
	// metadata resolution; use Pause for a fixed delay.
	MetadataLimiter Limiter
}

// Collector turns recent program signatures into enriched transfers.
type Collector struct {
	chain    ChainClient
	resolver MetadataResolver
	opts     CollectorOptions
	logger   *zap.Logger
}

func NewCollector(chain ChainClient, resolver MetadataResolver, opts CollectorOptions, logger *zap.Logger) *Collector {
	if opts.Program == "" {
		opts.Program = solbc.TokenProgramID
	}
	if opts.TxLimiter == nil {
		opts.TxLimiter = NewIntervalLimiter(0)
	}
	if opts.MetadataLimiter == nil {
		opts.MetadataLimiter = Pause(0)
	}
	return &Collector{
		chain:    chain,
		resolver: resolver,
		opts:     opts,
		logger:   logger.Named("collector"),
	}
}

// Collect returns up to n transfers in signature order (newest first).
// It is best-effort: listing failures yield an empty slice, bad records are
// skipped. The only error returned is the context error on cancellation.
func (c *Collector) Collect(ctx context.Context, n int) ([]TokenTransfer, error) {
	if n <= 0 {
		return nil, nil
	}

	signatures, err := c.listSignatures(ctx, 2*n)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error("Failed to fetch signatures",
			zap.String("program", c.opts.Program),
			zap.Int("limit", 2*n),
			zap.Error(err))
		return []TokenTransfer{}, nil
	}

	c.logger.Debug("Fetched signatures", zap.Int("count", len(signatures)))

	transfers := make([]TokenTransfer, 0, n)
	var skipped int
	for _, sig := range signatures {
		if len(transfers) >= n {
			break
		}

		transfer, err := c.collectOne(ctx, sig)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			skipped++
			if !errors.Is(err, errExcluded) {
				c.logger.Debug("Skipping signature",
					zap.String("signature", sig),
					zap.Error(err))
			}
			continue
		}
		transfers = append(transfers, transfer)
	}

	c.logger.Info("Collected transfers",
		zap.Int("signatures", len(signatures)),
		zap.Int("transfers", len(transfers)),
		zap.Int("skipped", skipped))

	return transfers, nil
}

func (c *Collector) collectOne(ctx context.Context, sig string) (TokenTransfer, error) {
	if err := c.opts.TxLimiter.Wait(ctx); err != nil {
		return TokenTransfer{}, err
	}

	tx, err := c.chain.GetParsedTransaction(ctx, sig)
	if err != nil {
		return TokenTransfer{}, fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil || len(tx.PostTokenBalances) == 0 {
		return TokenTransfer{}, ErrNoTokenBalance
	}
	if tx.BlockTime == nil {
		return TokenTransfer{}, ErrNoBlockTime
	}

	balance := tx.PostTokenBalances[0]
	if balance.Mint == "" || !balance.HasAmount {
		return TokenTransfer{}, ErrNoAmount
	}
	mint := balance.Mint
	if token.IsExcluded(mint) {
		return TokenTransfer{}, errExcluded
	}
	if len(tx.AccountKeys) == 0 {
		return TokenTransfer{}, ErrNoBuyer
	}

	isPump := token.IsPumpToken(mint)
	var links *token.PumpLinks
	if isPump {
		links = token.NewPumpLinks(mint)
	}

	if err := c.opts.MetadataLimiter.Wait(ctx); err != nil {
		return TokenTransfer{}, err
	}
	md := c.resolver.Resolve(ctx, mint)

	var amount float64
	if balance.UIAmount != nil {
		amount = *balance.UIAmount
	}

	return TokenTransfer{
		Signature:    sig,
		Timestamp:    tx.BlockTime.UTC(),
		TokenAddress: mint,
		TokenName:    md.Name,
		TokenSymbol:  md.Symbol,
		Amount:       amount,
		MarketCap:    md.MarketCap,
		Buyer:        tx.AccountKeys[0],
		IsPumpToken:  isPump,
		PumpLinks:    links,
	}, nil
}

func (c *Collector) listSignatures(ctx context.Context, limit int) ([]string, error) {
	if err := c.opts.TxLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.chain.GetSignatures(ctx, c.opts.Program, limit)
}
