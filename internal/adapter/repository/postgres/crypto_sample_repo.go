package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// cryptoSampleRepository implements domain.CryptoSampleRepository
type cryptoSampleRepository struct {
	db *DB
}

// NewCryptoSampleRepository creates a new crypto sample repository
func NewCryptoSampleRepository(db *DB) domain.CryptoSampleRepository {
	return &cryptoSampleRepository{db: db}
}

// Add stores a new portfolio snapshot
func (r *cryptoSampleRepository) Add(ctx context.Context, sample *domain.CryptoSample) error {
	query := `
		INSERT INTO crypto_samples (id, sampled_at, total_value_usd, wallets_value_usd, exchange_value_usd)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		sample.ID,
		sample.Timestamp,
		sample.TotalValueUSD.String(),
		sample.WalletsValueUSD.String(),
		sample.ExchangeValueUSD.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert crypto sample: %w", err)
	}

	return nil
}

// GetRange retrieves all samples within [start, end]
func (r *cryptoSampleRepository) GetRange(ctx context.Context, start, end time.Time) ([]domain.CryptoSample, error) {
	query := `
		SELECT id, sampled_at, total_value_usd, wallets_value_usd, exchange_value_usd
		FROM crypto_samples
		WHERE sampled_at >= $1 AND sampled_at <= $2
		ORDER BY sampled_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query crypto samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.CryptoSample
	for rows.Next() {
		var sample domain.CryptoSample
		var totalStr, walletsStr, exchangeStr string

		if err := rows.Scan(
			&sample.ID,
			&sample.Timestamp,
			&totalStr,
			&walletsStr,
			&exchangeStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan crypto sample: %w", err)
		}

		if sample.TotalValueUSD, err = decimal.NewFromString(totalStr); err != nil {
			return nil, fmt.Errorf("failed to parse total_value_usd: %w", err)
		}
		if sample.WalletsValueUSD, err = decimal.NewFromString(walletsStr); err != nil {
			return nil, fmt.Errorf("failed to parse wallets_value_usd: %w", err)
		}
		if sample.ExchangeValueUSD, err = decimal.NewFromString(exchangeStr); err != nil {
			return nil, fmt.Errorf("failed to parse exchange_value_usd: %w", err)
		}

		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate crypto samples: %w", err)
	}

	return samples, nil
}
