package timeseries

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// BuildFinanceDaySeries converts an unordered batch of raw statements into a
// per-day forward-filled series, sorted ascending by date.
//
// Finance statements are sparse (often monthly), so each day point carries
// the last known balance of every source seen so far: once a source has
// reported, its balance persists until a newer statement for that same
// source supersedes it. Within a single day the last statement per source
// wins (statements are stable-sorted, so ties keep input order).
func BuildFinanceDaySeries(statements []domain.FinanceStatement) []domain.FinanceDayPoint {
	if len(statements) == 0 {
		return nil
	}

	// Sort a copy to avoid mutating the caller's slice
	sorted := make([]domain.FinanceStatement, len(statements))
	copy(sorted, statements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StatementDate.Before(sorted[j].StatementDate)
	})

	// Fold over date groups carrying the latest balance per source
	latest := make(map[uuid.UUID]domain.SourceBalance)
	var points []domain.FinanceDayPoint

	i := 0
	for i < len(sorted) {
		day := truncateToDay(sorted[i].StatementDate)

		for i < len(sorted) && truncateToDay(sorted[i].StatementDate).Equal(day) {
			st := sorted[i]
			latest[st.SourceID] = domain.SourceBalance{
				SourceID:   st.SourceID,
				SourceName: st.SourceName,
				SourceType: st.SourceType,
				Balance:    st.BalanceUSD,
			}
			i++
		}

		points = append(points, newFinanceDayPoint(day, latest))
	}

	return points
}

// newFinanceDayPoint snapshots the accumulator into an immutable day point.
func newFinanceDayPoint(day time.Time, latest map[uuid.UUID]domain.SourceBalance) domain.FinanceDayPoint {
	balances := make([]domain.SourceBalance, 0, len(latest))
	total := decimal.Zero
	for _, b := range latest {
		balances = append(balances, b)
		total = total.Add(b.Balance)
	}

	// Map iteration order is random; keep the output deterministic
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].SourceName != balances[j].SourceName {
			return balances[i].SourceName < balances[j].SourceName
		}
		return balances[i].SourceID.String() < balances[j].SourceID.String()
	})

	return domain.FinanceDayPoint{
		Timestamp:      day,
		TotalBalance:   total,
		SourceBalances: balances,
	}
}

// truncateToDay drops the time-of-day portion, in UTC.
func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
