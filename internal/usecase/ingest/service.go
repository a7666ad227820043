package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// CryptoSampleInput carries the fields of a new portfolio snapshot.
type CryptoSampleInput struct {
	Timestamp        time.Time // zero means now
	TotalValueUSD    decimal.Decimal
	WalletsValueUSD  decimal.Decimal
	ExchangeValueUSD decimal.Decimal
}

// FinanceStatementInput carries the fields of a new account statement.
// This is the manual-entry ingestion path; parsed bank emails and PDF
// uploads arrive through the same service.
type FinanceStatementInput struct {
	SourceID      uuid.UUID
	SourceName    string
	SourceType    string
	StatementDate time.Time // zero means now
	BalanceUSD    decimal.Decimal
}

// IngestService records incoming snapshots and statements
type IngestService struct {
	CryptoRepo  domain.CryptoSampleRepository
	FinanceRepo domain.FinanceStatementRepository

	logger *logrus.Logger
}

// NewIngestService creates a new IngestService instance
func NewIngestService(
	cryptoRepo domain.CryptoSampleRepository,
	financeRepo domain.FinanceStatementRepository,
	logger *logrus.Logger,
) *IngestService {
	return &IngestService{
		CryptoRepo:  cryptoRepo,
		FinanceRepo: financeRepo,
		logger:      logger,
	}
}

// RecordCryptoSample validates and stores one portfolio snapshot.
// Returns the created sample.
func (s *IngestService) RecordCryptoSample(ctx context.Context, input CryptoSampleInput) (*domain.CryptoSample, error) {
	timestamp := input.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	sample := &domain.CryptoSample{
		ID:               uuid.New(),
		Timestamp:        timestamp,
		TotalValueUSD:    input.TotalValueUSD,
		WalletsValueUSD:  input.WalletsValueUSD,
		ExchangeValueUSD: input.ExchangeValueUSD,
	}

	if err := sample.Validate(); err != nil {
		return nil, err
	}

	if err := s.CryptoRepo.Add(ctx, sample); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"sample_id": sample.ID,
		"timestamp": sample.Timestamp,
	}).Info("recorded crypto sample")

	return sample, nil
}

// RecordFinanceStatement validates and stores one account statement.
// Returns the created statement.
func (s *IngestService) RecordFinanceStatement(ctx context.Context, input FinanceStatementInput) (*domain.FinanceStatement, error) {
	statementDate := input.StatementDate
	if statementDate.IsZero() {
		statementDate = time.Now().UTC()
	}

	statement := &domain.FinanceStatement{
		ID:            uuid.New(),
		SourceID:      input.SourceID,
		SourceName:    input.SourceName,
		SourceType:    input.SourceType,
		StatementDate: statementDate,
		BalanceUSD:    input.BalanceUSD,
	}

	if err := statement.Validate(); err != nil {
		return nil, err
	}

	if err := s.FinanceRepo.Add(ctx, statement); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"statement_id": statement.ID,
		"source_id":    statement.SourceID,
		"date":         statement.StatementDate,
	}).Info("recorded finance statement")

	return statement, nil
}
