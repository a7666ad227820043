package timeseries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// neighbors locates the samples of a sorted series around timestamp t.
// exact is the index of a sample at exactly t, before the latest sample
// strictly earlier, after the earliest sample strictly later. Each index is
// -1 when no such sample exists. Lookup is a binary search; n is the series
// length and at returns the timestamp at an index.
func neighbors(n int, at func(int) time.Time, t time.Time) (exact, before, after int) {
	exact, before, after = -1, -1, -1

	// First index with timestamp >= t
	idx := searchTime(n, at, t)

	if idx < n && at(idx).Equal(t) {
		exact = idx
	}
	if idx > 0 {
		before = idx - 1
	}

	afterIdx := idx
	if exact >= 0 {
		afterIdx = idx + 1
	}
	if afterIdx < n {
		after = afterIdx
	}

	return exact, before, after
}

// searchTime returns the smallest index whose timestamp is not before t.
func searchTime(n int, at func(int) time.Time, t time.Time) int {
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if at(mid).Before(t) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// interpolationRatio computes (t - before) / (after - before) at millisecond
// resolution. Callers guarantee before < t < after, so the result is in
// (0, 1) and the denominator is non-zero.
func interpolationRatio(before, after, t time.Time) decimal.Decimal {
	elapsed := t.Sub(before).Milliseconds()
	span := after.Sub(before).Milliseconds()
	return decimal.NewFromInt(elapsed).Div(decimal.NewFromInt(span))
}

// lerp linearly interpolates between from and to by ratio.
func lerp(from, to, ratio decimal.Decimal) decimal.Decimal {
	return from.Add(ratio.Mul(to.Sub(from)))
}

// cryptoValueAt produces the crypto side of the unified point at timestamp t,
// or nil when the series is empty.
//
// Exact matches are used verbatim so no interpolation drift is introduced.
// When t falls outside the known range the nearest sample is clamped: a flat
// line is drawn instead of guessing a trend, in either direction.
func cryptoValueAt(series []domain.CryptoSample, t time.Time) *domain.CryptoValue {
	if len(series) == 0 {
		return nil
	}

	exact, before, after := neighbors(len(series), func(i int) time.Time { return series[i].Timestamp }, t)

	switch {
	case exact >= 0:
		return cryptoValueOf(series[exact])
	case before >= 0 && after >= 0:
		b, a := series[before], series[after]
		ratio := interpolationRatio(b.Timestamp, a.Timestamp, t)
		return &domain.CryptoValue{
			TotalValueUSD:    lerp(b.TotalValueUSD, a.TotalValueUSD, ratio),
			WalletsValueUSD:  lerp(b.WalletsValueUSD, a.WalletsValueUSD, ratio),
			ExchangeValueUSD: lerp(b.ExchangeValueUSD, a.ExchangeValueUSD, ratio),
		}
	case before >= 0:
		return cryptoValueOf(series[before])
	default:
		return cryptoValueOf(series[after])
	}
}

func cryptoValueOf(s domain.CryptoSample) *domain.CryptoValue {
	return &domain.CryptoValue{
		TotalValueUSD:    s.TotalValueUSD,
		WalletsValueUSD:  s.WalletsValueUSD,
		ExchangeValueUSD: s.ExchangeValueUSD,
	}
}

// financeValueAt produces the finance side of the unified point at timestamp
// t, or nil when the series is empty. Boundary handling matches
// cryptoValueAt; interior timestamps interpolate per source, not just the
// scalar total.
func financeValueAt(series []domain.FinanceDayPoint, t time.Time) *domain.FinanceValue {
	if len(series) == 0 {
		return nil
	}

	exact, before, after := neighbors(len(series), func(i int) time.Time { return series[i].Timestamp }, t)

	switch {
	case exact >= 0:
		return financeValueOf(series[exact])
	case before >= 0 && after >= 0:
		ratio := interpolationRatio(series[before].Timestamp, series[after].Timestamp, t)
		return interpolateFinance(series[before], series[after], ratio)
	case before >= 0:
		return financeValueOf(series[before])
	default:
		return financeValueOf(series[after])
	}
}

func financeValueOf(p domain.FinanceDayPoint) *domain.FinanceValue {
	balances := make([]domain.SourceBalance, len(p.SourceBalances))
	copy(balances, p.SourceBalances)
	return &domain.FinanceValue{
		TotalBalance:   p.TotalBalance,
		SourceBalances: balances,
	}
}

// interpolateFinance blends two day points per source over the union of
// their source sets.
//
// A source present on both sides gets a linearly interpolated balance, with
// name and type taken from the before side (source identity is assumed
// stable per ID). A source present on one side only is carried through flat:
// it has a single known value in this interval, so there is nothing to
// interpolate. The total is recomputed as the sum of the per-source results
// so it stays consistent with the breakdown.
func interpolateFinance(before, after domain.FinanceDayPoint, ratio decimal.Decimal) *domain.FinanceValue {
	beforeByID := make(map[uuid.UUID]int, len(before.SourceBalances))
	for i, b := range before.SourceBalances {
		beforeByID[b.SourceID] = i
	}
	afterByID := make(map[uuid.UUID]int, len(after.SourceBalances))
	for i, a := range after.SourceBalances {
		afterByID[a.SourceID] = i
	}

	balances := make([]domain.SourceBalance, 0, len(after.SourceBalances))
	total := decimal.Zero

	for _, b := range before.SourceBalances {
		merged := b
		if i, ok := afterByID[b.SourceID]; ok {
			merged.Balance = lerp(b.Balance, after.SourceBalances[i].Balance, ratio)
		}
		balances = append(balances, merged)
		total = total.Add(merged.Balance)
	}

	// Sources that appear only after this interval's start
	for _, a := range after.SourceBalances {
		if _, ok := beforeByID[a.SourceID]; ok {
			continue
		}
		balances = append(balances, a)
		total = total.Add(a.Balance)
	}

	return &domain.FinanceValue{
		TotalBalance:   total,
		SourceBalances: balances,
	}
}
