package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FinanceStatement represents one raw account statement in the domain layer.
// Statements are produced whenever a statement for a single finance source is
// ingested (bank email parser, PDF upload, manual entry). Several statements
// may share a calendar date across different sources, and a source may have
// no statement on a given date.
type FinanceStatement struct {
	ID            uuid.UUID
	SourceID      uuid.UUID
	SourceName    string
	SourceType    string // free-form label, e.g. "bank" or "brokerage"
	StatementDate time.Time
	BalanceUSD    decimal.Decimal // may be negative (credit lines, margin)
}

// Validate ensures the statement adheres to domain rules
// Returns an error if validation fails
func (s *FinanceStatement) Validate() error {
	if s.SourceID == uuid.Nil {
		return errors.New("finance statement source ID cannot be empty")
	}
	if s.SourceName == "" {
		return errors.New("finance statement source name cannot be empty")
	}
	if s.StatementDate.IsZero() {
		return errors.New("finance statement date cannot be zero")
	}

	return nil
}

// SourceBalance is the last known balance of a single finance source.
type SourceBalance struct {
	SourceID   uuid.UUID
	SourceName string
	SourceType string
	Balance    decimal.Decimal
}

// FinanceDayPoint is the forward-filled position of all known finance
// sources as of one calendar date. TotalBalance is always the sum of
// SourceBalances. Once a source has reported, it stays in every later
// day point until a newer statement supersedes its balance.
type FinanceDayPoint struct {
	Timestamp      time.Time // date-truncated, UTC
	TotalBalance   decimal.Decimal
	SourceBalances []SourceBalance
}
