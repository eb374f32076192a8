package feed

import (
	"time"

	"github.com/rovshanmuradov/transfer-feed/internal/token"
)

// TokenTransfer is one enriched token movement. Identity is Signature and
// values are never mutated after the collector builds them.
type TokenTransfer struct {
	Signature    string
	Timestamp    time.Time
	TokenAddress string
	TokenName    string
	TokenSymbol  string
	Amount       float64
	MarketCap    float64
	Buyer        string
	IsPumpToken  bool
	PumpLinks    *token.PumpLinks
}

// Status of a poll pass.
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is what the presenter publishes to renderers after each step of a pass.
type State struct {
	Status    Status
	Transfers []TokenTransfer
	// Err carries a single user-facing message; causes are only logged.
	Err       string
	Changed   bool
	UpdatedAt time.Time
	PassID    string
}
