package timeseries

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// defaultWindow is used when the caller gives no explicit date range.
const defaultWindow = 30 * 24 * time.Hour

// SeriesOptions controls the window and the sources of a unified series request.
type SeriesOptions struct {
	StartDate      time.Time // zero means EndDate minus the default window
	EndDate        time.Time // zero means now
	IncludeCrypto  bool
	IncludeFinance bool
}

// DefaultSeriesOptions returns the default request: last 30 days, both
// sources included.
func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{
		IncludeCrypto:  true,
		IncludeFinance: true,
	}
}

// SeriesService is the unified asset time-series aggregation engine. It
// merges the crypto snapshot series and the finance statement series onto a
// single chronological timeline suitable for plotting, filling gaps by
// linear interpolation and clamping at the boundaries of each series.
//
// The engine holds no state across requests; every invocation fetches fresh
// data and runs a pure transformation over it.
type SeriesService struct {
	CryptoRepo  domain.CryptoSampleRepository
	FinanceRepo domain.FinanceStatementRepository
	Renderer    domain.ChartRenderer

	logger *logrus.Logger
}

// NewSeriesService creates a new SeriesService instance
func NewSeriesService(
	cryptoRepo domain.CryptoSampleRepository,
	financeRepo domain.FinanceStatementRepository,
	renderer domain.ChartRenderer,
	logger *logrus.Logger,
) *SeriesService {
	return &SeriesService{
		CryptoRepo:  cryptoRepo,
		FinanceRepo: financeRepo,
		Renderer:    renderer,
		logger:      logger,
	}
}

// BuildUnifiedSeries fetches both source series for the requested window and
// merges them into one ordered list of unified points.
//
// The two fetches are independent and run concurrently. Returns
// domain.ErrNoData when both series are empty for the window, the only
// exceptional exit for missing data; a gap in one series at one timestamp is
// represented by a nil sub-value, never by an error.
func (s *SeriesService) BuildUnifiedSeries(ctx context.Context, opts SeriesOptions) ([]domain.UnifiedPoint, error) {
	opts = normalizeOptions(opts)

	var cryptoSeries []domain.CryptoSample
	var financeSeries []domain.FinanceDayPoint

	g, gctx := errgroup.WithContext(ctx)

	if opts.IncludeCrypto {
		g.Go(func() error {
			samples, err := s.CryptoRepo.GetRange(gctx, opts.StartDate, opts.EndDate)
			if err != nil {
				return fmt.Errorf("failed to load crypto samples: %w", err)
			}
			cryptoSeries = NormalizeCryptoSeries(samples)
			return nil
		})
	}

	if opts.IncludeFinance {
		g.Go(func() error {
			statements, err := s.FinanceRepo.GetRange(gctx, opts.StartDate, opts.EndDate)
			if err != nil {
				return fmt.Errorf("failed to load finance statements: %w", err)
			}
			financeSeries = BuildFinanceDaySeries(statements)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(cryptoSeries) == 0 && len(financeSeries) == 0 {
		return nil, domain.ErrNoData
	}

	timeline := MergeTimelines(cryptoSeries, financeSeries)

	points := make([]domain.UnifiedPoint, 0, len(timeline))
	for _, t := range timeline {
		points = append(points, domain.UnifiedPoint{
			Timestamp: t,
			Crypto:    cryptoValueAt(cryptoSeries, t),
			Finance:   financeValueAt(financeSeries, t),
		})
	}

	s.logger.WithFields(logrus.Fields{
		"start":          opts.StartDate,
		"end":            opts.EndDate,
		"crypto_points":  len(cryptoSeries),
		"finance_points": len(financeSeries),
		"unified_points": len(points),
	}).Debug("built unified series")

	return points, nil
}

// BuildChart builds the unified series and hands it to the chart renderer.
func (s *SeriesService) BuildChart(ctx context.Context, opts SeriesOptions) ([]byte, error) {
	points, err := s.BuildUnifiedSeries(ctx, opts)
	if err != nil {
		return nil, err
	}

	image, err := s.Renderer.RenderSeries(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return image, nil
}

// normalizeOptions applies the default window to missing dates.
func normalizeOptions(opts SeriesOptions) SeriesOptions {
	if opts.EndDate.IsZero() {
		opts.EndDate = time.Now().UTC()
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = opts.EndDate.Add(-defaultWindow)
	}
	return opts
}
