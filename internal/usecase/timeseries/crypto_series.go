package timeseries

import (
	"sort"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// NormalizeCryptoSeries sorts samples ascending by timestamp and collapses
// duplicate timestamps (last one wins). Each sample is already a complete
// snapshot of the full portfolio, so unlike per-source finance statements
// no forward-fill is needed.
//
// Duplicate timestamps within one series would break the interpolator's
// before < after guarantee, so they are repaired here rather than rejected.
func NormalizeCryptoSeries(samples []domain.CryptoSample) []domain.CryptoSample {
	if len(samples) == 0 {
		return nil
	}

	sorted := make([]domain.CryptoSample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	out := make([]domain.CryptoSample, 0, len(sorted))
	for _, s := range sorted {
		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(s.Timestamp) {
			out[n-1] = s
			continue
		}
		out = append(out, s)
	}

	return out
}
