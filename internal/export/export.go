package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/transfer-feed/internal/feed"
	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

var ErrNothingToExport = errors.New("no transfers match the export criteria")

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format      ExportFormat
	TokenFilter string // Filter by token mint
	OnlyPump    bool
	OutputDir   string
}

// TransferExporter writes snapshots of the transfer list to disk
type TransferExporter struct {
	logger *zap.Logger
	now    func() time.Time
	create func(path string) (io.WriteCloser, error)
}

func NewTransferExporter(logger *zap.Logger) *TransferExporter {
	return &TransferExporter{
		logger: logger.Named("export"),
		now:    time.Now,
		create: createFile,
	}
}

func createFile(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// closeFile reports a close failure unless an earlier error is already set.
func closeFile(file io.Closer, err *error) {
	if cerr := file.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close export file: %w", cerr)
	}
}

// ExportTransfers writes the filtered transfers, oldest first, and returns
// the path of the created file.
func (te *TransferExporter) ExportTransfers(transfers []feed.TokenTransfer, options ExportOptions) (string, error) {
	filtered := filterTransfers(transfers, options)
	if len(filtered) == 0 {
		return "", ErrNothingToExport
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.Before(filtered[j].Timestamp)
	})

	if options.Format == "" {
		options.Format = FormatCSV
	}
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(options.OutputDir, te.generateFilename(options))

	var err error
	switch options.Format {
	case FormatCSV:
		err = te.exportToCSV(filtered, outputPath)
	case FormatJSON:
		err = te.exportToJSON(filtered, outputPath)
	default:
		err = fmt.Errorf("unsupported format: %s", options.Format)
	}
	if err != nil {
		return "", err
	}

	te.logger.Info("Transfers exported",
		zap.String("file", outputPath),
		zap.Int("count", len(filtered)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

func filterTransfers(transfers []feed.TokenTransfer, options ExportOptions) []feed.TokenTransfer {
	var filtered []feed.TokenTransfer
	for _, t := range transfers {
		if options.TokenFilter != "" && t.TokenAddress != options.TokenFilter {
			continue
		}
		if options.OnlyPump && !t.IsPumpToken {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func (te *TransferExporter) generateFilename(options ExportOptions) string {
	prefix := "transfers_all"
	if options.OnlyPump {
		prefix = "transfers_pump"
	}
	if mint := options.TokenFilter; mint != "" {
		if len(mint) > 8 {
			mint = mint[:8]
		}
		prefix += "_" + mint
	}
	return fmt.Sprintf("%s_%s.%s", prefix, te.now().Format("20060102_150405"), options.Format)
}

// CSVHeaders is the column order of CSV exports
func CSVHeaders() []string {
	return []string{"timestamp", "signature", "buyer", "token_address", "token_name", "token_symbol", "amount", "market_cap", "pump", "links"}
}

func toCSV(t feed.TokenTransfer) []string {
	links := feed.TokenLinks(t)
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return []string{
		t.Timestamp.UTC().Format(time.RFC3339),
		t.Signature,
		t.Buyer,
		t.TokenAddress,
		t.TokenName,
		t.TokenSymbol,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		strconv.FormatFloat(t.MarketCap, 'f', -1, 64),
		strconv.FormatBool(t.IsPumpToken),
		strings.Join(urls, " "),
	}
}

func (te *TransferExporter) exportToCSV(transfers []feed.TokenTransfer, outputPath string) (err error) {
	file, err := te.create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer closeFile(file, &err)

	writer := csv.NewWriter(file)
	if err := writer.Write(CSVHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, t := range transfers {
		if err := writer.Write(toCSV(t)); err != nil {
			return fmt.Errorf("failed to write transfer: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// jsonTransfer is the exported shape of a transfer
type jsonTransfer struct {
	Signature    string    `json:"signature"`
	Timestamp    time.Time `json:"timestamp"`
	TokenAddress string    `json:"token_address"`
	TokenName    string    `json:"token_name"`
	TokenSymbol  string    `json:"token_symbol"`
	Amount       float64   `json:"amount"`
	MarketCap    float64   `json:"market_cap"`
	Buyer        string    `json:"buyer"`
	BuyerURL     string    `json:"buyer_url"`
	IsPumpToken  bool      `json:"is_pump_token"`
	Links        []string  `json:"links"`
}

func (te *TransferExporter) exportToJSON(transfers []feed.TokenTransfer, outputPath string) (err error) {
	file, err := te.create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer closeFile(file, &err)

	items := make([]jsonTransfer, len(transfers))
	for i, t := range transfers {
		var links []string
		for _, l := range feed.TokenLinks(t) {
			links = append(links, l.URL)
		}
		items[i] = jsonTransfer{
			Signature:    t.Signature,
			Timestamp:    t.Timestamp,
			TokenAddress: t.TokenAddress,
			TokenName:    t.TokenName,
			TokenSymbol:  t.TokenSymbol,
			Amount:       t.Amount,
			MarketCap:    t.MarketCap,
			Buyer:        t.Buyer,
			BuyerURL:     feed.ExplorerURL(t.Buyer),
			IsPumpToken:  t.IsPumpToken,
			Links:        links,
		}
	}

	exportData := struct {
		ExportTime    time.Time      `json:"export_time"`
		TransferCount int            `json:"transfer_count"`
		Summary       ExportSummary  `json:"summary"`
		Transfers     []jsonTransfer `json:"transfers"`
	}{
		ExportTime:    te.now(),
		TransferCount: len(transfers),
		Summary:       calculateSummary(transfers),
		Transfers:     items,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// ExportSummary contains summary statistics for exported transfers
type ExportSummary struct {
	TotalTransfers int       `json:"total_transfers"`
	UniqueTokens   int       `json:"unique_tokens"`
	UniqueBuyers   int       `json:"unique_buyers"`
	PumpTransfers  int       `json:"pump_transfers"`
	UnknownTokens  int       `json:"unknown_tokens"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// calculateSummary expects transfers sorted by timestamp
func calculateSummary(transfers []feed.TokenTransfer) ExportSummary {
	summary := ExportSummary{TotalTransfers: len(transfers)}
	if len(transfers) == 0 {
		return summary
	}

	summary.StartDate = transfers[0].Timestamp
	summary.EndDate = transfers[len(transfers)-1].Timestamp

	tokens := make(map[string]struct{})
	buyers := make(map[string]struct{})
	for _, t := range transfers {
		tokens[t.TokenAddress] = struct{}{}
		buyers[t.Buyer] = struct{}{}
		if t.IsPumpToken {
			summary.PumpTransfers++
		}
		if t.TokenSymbol == token.UnknownSymbol {
			summary.UnknownTokens++
		}
	}
	summary.UniqueTokens = len(tokens)
	summary.UniqueBuyers = len(buyers)
	return summary
}
