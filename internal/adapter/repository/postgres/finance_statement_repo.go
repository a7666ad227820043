package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// financeStatementRepository implements domain.FinanceStatementRepository
type financeStatementRepository struct {
	db *DB
}

// NewFinanceStatementRepository creates a new finance statement repository
func NewFinanceStatementRepository(db *DB) domain.FinanceStatementRepository {
	return &financeStatementRepository{db: db}
}

// Add stores a new account statement
func (r *financeStatementRepository) Add(ctx context.Context, statement *domain.FinanceStatement) error {
	query := `
		INSERT INTO finance_statements (id, source_id, source_name, source_type, statement_date, balance_usd)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		statement.ID,
		statement.SourceID,
		statement.SourceName,
		statement.SourceType,
		statement.StatementDate,
		statement.BalanceUSD.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert finance statement: %w", err)
	}

	return nil
}

// GetRange retrieves all statements within [start, end]
func (r *financeStatementRepository) GetRange(ctx context.Context, start, end time.Time) ([]domain.FinanceStatement, error) {
	query := `
		SELECT id, source_id, source_name, source_type, statement_date, balance_usd
		FROM finance_statements
		WHERE statement_date >= $1 AND statement_date <= $2
		ORDER BY statement_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query finance statements: %w", err)
	}
	defer rows.Close()

	var statements []domain.FinanceStatement
	for rows.Next() {
		var statement domain.FinanceStatement
		var balanceStr string

		if err := rows.Scan(
			&statement.ID,
			&statement.SourceID,
			&statement.SourceName,
			&statement.SourceType,
			&statement.StatementDate,
			&balanceStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan finance statement: %w", err)
		}

		if statement.BalanceUSD, err = decimal.NewFromString(balanceStr); err != nil {
			return nil, fmt.Errorf("failed to parse balance_usd: %w", err)
		}

		statements = append(statements, statement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate finance statements: %w", err)
	}

	return statements, nil
}
