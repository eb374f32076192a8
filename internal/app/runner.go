// internal/app/runner.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/rovshanmuradov/transfer-feed/internal/blockchain/solbc"
	"github.com/rovshanmuradov/transfer-feed/internal/config"
	"github.com/rovshanmuradov/transfer-feed/internal/export"
	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/fetch"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
	"go.uber.org/zap"
)

// Runner owns the feed pipeline: chain client, metadata resolver,
// collector and poller, all built from one Config.
type Runner struct {
	logger    *zap.Logger
	config    *config.Config
	collector *feed.Collector
	poller    *feed.Poller
	exporter  *export.TransferExporter
}

// NewRunner wires the pipeline. Every state the poller produces goes to sink.
func NewRunner(cfg *config.Config, sink feed.Sink, logger *zap.Logger) *Runner {
	fetcher := fetch.New(
		&http.Client{Timeout: cfg.RequestTimeout()},
		fetch.Options{Retries: cfg.Retries, BaseDelay: cfg.RetryBaseDelay()},
		logger,
	)

	resolver := token.NewResolver(
		token.NewCache(),
		token.NewAssetClient(cfg.MetadataURL, fetcher),
		token.NewPriceClient(cfg.PriceURL, fetcher),
		logger,
	)

	collector := feed.NewCollector(
		solbc.NewClient(cfg.RPCURL, logger),
		resolver,
		feed.CollectorOptions{
			TxLimiter:       feed.NewIntervalLimiter(cfg.TxDelay()),
			MetadataLimiter: feed.Pause(cfg.MetadataDelay()),
		},
		logger,
	)

	poller := feed.NewPoller(
		collector,
		feed.NewWindow(cfg.DisplayLimit),
		feed.PollerOptions{Interval: cfg.PollInterval(), Limit: cfg.FetchLimit},
		sink,
		logger,
	)

	return &Runner{
		logger:    logger,
		config:    cfg,
		collector: collector,
		poller:    poller,
		exporter:  export.NewTransferExporter(logger),
	}
}

// Run polls until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	r.logger.Info("Starting transfer feed",
		zap.String("rpc", fetch.RedactURL(r.config.RPCURL)),
		zap.String("metadata", fetch.RedactURL(r.config.MetadataURL)),
		zap.String("price", r.config.PriceURL))

	if err := r.poller.Run(ctx); err != nil {
		return fmt.Errorf("poller stopped: %w", err)
	}
	return nil
}

func (r *Runner) Poller() *feed.Poller { return r.poller }

func (r *Runner) Exporter() *export.TransferExporter { return r.exporter }

func (r *Runner) Shutdown() {
	r.logger.Info("Transfer feed shutting down")

	if err := r.logger.Sync(); err != nil {
		if !os.IsNotExist(err) &&
			err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: inappropriate ioctl for device" {
			fmt.Fprintf(os.Stderr, "failed to sync logger during shutdown: %v\n", err)
		}
	}
}
