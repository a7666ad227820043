package domain

import (
	"context"
	"time"
)

// CryptoSampleRepository defines the interface for crypto snapshot persistence operations
type CryptoSampleRepository interface {
	// Add stores a new portfolio snapshot
	Add(ctx context.Context, sample *CryptoSample) error

	// GetRange retrieves all samples with start <= timestamp <= end,
	// in no particular order
	GetRange(ctx context.Context, start, end time.Time) ([]CryptoSample, error)
}

// FinanceStatementRepository defines the interface for finance statement persistence operations
type FinanceStatementRepository interface {
	// Add stores a new account statement
	Add(ctx context.Context, statement *FinanceStatement) error

	// GetRange retrieves all statements with start <= statement date <= end,
	// in no particular order
	GetRange(ctx context.Context, start, end time.Time) ([]FinanceStatement, error)
}

// ChartRenderer turns a unified series into a chart image.
// Rendering mechanics live behind this interface; the engine only hands the
// assembled series over.
type ChartRenderer interface {
	// RenderSeries renders the unified series and returns the encoded image
	RenderSeries(ctx context.Context, points []UnifiedPoint) ([]byte, error)
}
