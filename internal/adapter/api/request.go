package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthpulse/wealthpulse/internal/usecase/ingest"
	"github.com/wealthpulse/wealthpulse/internal/usecase/timeseries"
)

// parseSeriesOptions reads the series query parameters. All of them are
// optional: missing dates fall back to the engine's default window and the
// include flags default to true.
func parseSeriesOptions(r *http.Request) (timeseries.SeriesOptions, error) {
	opts := timeseries.DefaultSeriesOptions()

	var err error
	if opts.StartDate, err = parseDateParam(r, "start_date"); err != nil {
		return timeseries.SeriesOptions{}, err
	}
	if opts.EndDate, err = parseDateParam(r, "end_date"); err != nil {
		return timeseries.SeriesOptions{}, err
	}
	if opts.IncludeCrypto, err = parseBoolParam(r, "include_crypto", true); err != nil {
		return timeseries.SeriesOptions{}, err
	}
	if opts.IncludeFinance, err = parseBoolParam(r, "include_finance", true); err != nil {
		return timeseries.SeriesOptions{}, err
	}

	if !opts.StartDate.IsZero() && !opts.EndDate.IsZero() && opts.EndDate.Before(opts.StartDate) {
		return timeseries.SeriesOptions{}, fmt.Errorf("end_date must not be before start_date")
	}

	return opts, nil
}

// parseDateParam accepts 2006-01-02 or RFC3339 values; empty means zero time.
func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %q", name, value)
	}
	return t, nil
}

func parseBoolParam(r *http.Request, name string, defaultValue bool) (bool, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %q", name, value)
	}
	return b, nil
}

// createCryptoSampleRequest is the request body for recording a snapshot.
// Money values are decimal strings.
type createCryptoSampleRequest struct {
	Timestamp        string `json:"timestamp,omitempty"` // RFC3339, defaults to now
	TotalValueUSD    string `json:"totalValueUsd"`
	WalletsValueUSD  string `json:"walletsValueUsd"`
	ExchangeValueUSD string `json:"exchangeValueUsd"`
}

func parseCryptoSampleRequest(r *http.Request) (ingest.CryptoSampleInput, error) {
	var body createCryptoSampleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ingest.CryptoSampleInput{}, fmt.Errorf("failed to decode request body: %w", err)
	}

	var input ingest.CryptoSampleInput
	var err error

	if body.Timestamp != "" {
		if input.Timestamp, err = time.Parse(time.RFC3339, body.Timestamp); err != nil {
			return ingest.CryptoSampleInput{}, fmt.Errorf("invalid timestamp format: %w", err)
		}
	}
	if input.TotalValueUSD, err = decimal.NewFromString(body.TotalValueUSD); err != nil {
		return ingest.CryptoSampleInput{}, fmt.Errorf("invalid totalValueUsd format: %w", err)
	}
	if input.WalletsValueUSD, err = decimal.NewFromString(body.WalletsValueUSD); err != nil {
		return ingest.CryptoSampleInput{}, fmt.Errorf("invalid walletsValueUsd format: %w", err)
	}
	if input.ExchangeValueUSD, err = decimal.NewFromString(body.ExchangeValueUSD); err != nil {
		return ingest.CryptoSampleInput{}, fmt.Errorf("invalid exchangeValueUsd format: %w", err)
	}

	return input, nil
}

// createFinanceStatementRequest is the request body for recording a statement.
type createFinanceStatementRequest struct {
	SourceID      string `json:"sourceId"`
	SourceName    string `json:"sourceName"`
	SourceType    string `json:"sourceType"`
	StatementDate string `json:"statementDate,omitempty"` // RFC3339 or 2006-01-02, defaults to now
	BalanceUSD    string `json:"balanceUsd"`
}

func parseFinanceStatementRequest(r *http.Request) (ingest.FinanceStatementInput, error) {
	var body createFinanceStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return ingest.FinanceStatementInput{}, fmt.Errorf("failed to decode request body: %w", err)
	}

	var input ingest.FinanceStatementInput
	var err error

	if input.SourceID, err = uuid.Parse(body.SourceID); err != nil {
		return ingest.FinanceStatementInput{}, fmt.Errorf("invalid sourceId format: %w", err)
	}
	input.SourceName = body.SourceName
	input.SourceType = body.SourceType

	if body.StatementDate != "" {
		input.StatementDate, err = time.Parse("2006-01-02", body.StatementDate)
		if err != nil {
			if input.StatementDate, err = time.Parse(time.RFC3339, body.StatementDate); err != nil {
				return ingest.FinanceStatementInput{}, fmt.Errorf("invalid statementDate format: %q", body.StatementDate)
			}
		}
	}
	if input.BalanceUSD, err = decimal.NewFromString(body.BalanceUSD); err != nil {
		return ingest.FinanceStatementInput{}, fmt.Errorf("invalid balanceUsd format: %w", err)
	}

	return input, nil
}
