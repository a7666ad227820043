package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData is returned by the series engine when both source series are
// empty for the requested window. It is the only error the engine raises for
// missing data; every other gap is represented structurally by omission.
var ErrNoData = errors.New("no data available for the requested window")

// CryptoValue is the crypto side of a unified point.
type CryptoValue struct {
	TotalValueUSD    decimal.Decimal
	WalletsValueUSD  decimal.Decimal
	ExchangeValueUSD decimal.Decimal
}

// FinanceValue is the finance side of a unified point.
type FinanceValue struct {
	TotalBalance   decimal.Decimal
	SourceBalances []SourceBalance
}

// UnifiedPoint is one point on the merged chart timeline. Either side may be
// nil, meaning the corresponding series has no usable data at this instant,
// not even by interpolation or boundary clamping.
type UnifiedPoint struct {
	Timestamp time.Time
	Crypto    *CryptoValue
	Finance   *FinanceValue
}
