package timeseries

import (
	"sort"
	"time"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// MergeTimelines computes the sorted, de-duplicated union of timestamps
// across both series. The result is the x-axis of the unified chart. An
// empty result simply means there is nothing to chart; whether that is an
// error is the caller's decision.
func MergeTimelines(cryptoSeries []domain.CryptoSample, financeSeries []domain.FinanceDayPoint) []time.Time {
	merged := make([]time.Time, 0, len(cryptoSeries)+len(financeSeries))
	for _, s := range cryptoSeries {
		merged = append(merged, s.Timestamp)
	}
	for _, p := range financeSeries {
		merged = append(merged, p.Timestamp)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })

	timeline := make([]time.Time, 0, len(merged))
	for _, t := range merged {
		if n := len(timeline); n > 0 && timeline[n-1].Equal(t) {
			continue
		}
		timeline = append(timeline, t)
	}

	return timeline
}
