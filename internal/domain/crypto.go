package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CryptoSample represents one crypto portfolio snapshot in the domain layer.
// One sample is produced per portfolio-report generation event and is
// immutable once created. The USD values are opaque to the engine: valuation
// happens upstream.
type CryptoSample struct {
	ID               uuid.UUID
	Timestamp        time.Time
	TotalValueUSD    decimal.Decimal
	WalletsValueUSD  decimal.Decimal
	ExchangeValueUSD decimal.Decimal
}

// Validate ensures the sample adheres to domain rules
// Returns an error if validation fails
func (s *CryptoSample) Validate() error {
	if s.Timestamp.IsZero() {
		return errors.New("crypto sample timestamp cannot be zero")
	}

	if s.TotalValueUSD.IsNegative() {
		return errors.New("crypto sample total value cannot be negative")
	}
	if s.WalletsValueUSD.IsNegative() {
		return errors.New("crypto sample wallets value cannot be negative")
	}
	if s.ExchangeValueUSD.IsNegative() {
		return errors.New("crypto sample exchange value cannot be negative")
	}

	return nil
}
