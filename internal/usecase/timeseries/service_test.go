package timeseries

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wealthpulse/wealthpulse/internal/domain"
)

// MockCryptoSampleRepository is a mock implementation of CryptoSampleRepository for testing
type MockCryptoSampleRepository struct {
	mock.Mock
}

func (m *MockCryptoSampleRepository) Add(ctx context.Context, sample *domain.CryptoSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockCryptoSampleRepository) GetRange(ctx context.Context, start, end time.Time) ([]domain.CryptoSample, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CryptoSample), args.Error(1)
}

// MockFinanceStatementRepository is a mock implementation of FinanceStatementRepository for testing
type MockFinanceStatementRepository struct {
	mock.Mock
}

func (m *MockFinanceStatementRepository) Add(ctx context.Context, statement *domain.FinanceStatement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockFinanceStatementRepository) GetRange(ctx context.Context, start, end time.Time) ([]domain.FinanceStatement, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinanceStatement), args.Error(1)
}

// MockChartRenderer is a mock implementation of ChartRenderer for testing
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) RenderSeries(ctx context.Context, points []domain.UnifiedPoint) ([]byte, error) {
	args := m.Called(ctx, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestService(cryptoRepo domain.CryptoSampleRepository, financeRepo domain.FinanceStatementRepository, renderer domain.ChartRenderer) *SeriesService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewSeriesService(cryptoRepo, financeRepo, renderer, logger)
}

func optionsFor(start, end time.Time) SeriesOptions {
	opts := DefaultSeriesOptions()
	opts.StartDate = start
	opts.EndDate = end
	return opts
}

func TestBuildUnifiedSeries_WorkedExample(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	sourceA := uuid.New()
	start, end := day(2024, 3, 1), day(2024, 3, 5)

	// Crypto at day 1 (total=100) and day 5 (total=200); finance at day 3 only
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{
		cryptoSample(day(2024, 3, 1), 100, 60, 40),
		cryptoSample(day(2024, 3, 5), 200, 120, 80),
	}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{
		statement(sourceA, "Checking", day(2024, 3, 3), 500),
	}, nil)

	points, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))
	require.NoError(t, err)
	require.Len(t, points, 3)

	// Day 1: crypto exact, finance clamped backward to its first known value
	assert.True(t, points[0].Timestamp.Equal(day(2024, 3, 1)))
	require.NotNil(t, points[0].Crypto)
	assert.True(t, points[0].Crypto.TotalValueUSD.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, points[0].Finance)
	assert.True(t, points[0].Finance.TotalBalance.Equal(decimal.NewFromInt(500)))

	// Day 3: crypto interpolated halfway, finance exact
	assert.True(t, points[1].Timestamp.Equal(day(2024, 3, 3)))
	require.NotNil(t, points[1].Crypto)
	assert.True(t, points[1].Crypto.TotalValueUSD.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, points[1].Finance)
	assert.True(t, points[1].Finance.TotalBalance.Equal(decimal.NewFromInt(500)))

	// Day 5: crypto exact, finance clamped forward
	assert.True(t, points[2].Timestamp.Equal(day(2024, 3, 5)))
	require.NotNil(t, points[2].Crypto)
	assert.True(t, points[2].Crypto.TotalValueUSD.Equal(decimal.NewFromInt(200)))
	require.NotNil(t, points[2].Finance)
	assert.True(t, points[2].Finance.TotalBalance.Equal(decimal.NewFromInt(500)))

	// Timeline is strictly ascending with no duplicates
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Timestamp.Before(points[i].Timestamp))
	}

	mockCryptoRepo.AssertExpectations(t)
	mockFinanceRepo.AssertExpectations(t)
}

func TestBuildUnifiedSeries_NoData(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	start, end := day(2024, 3, 1), day(2024, 3, 31)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{}, nil)

	points, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))

	assert.Nil(t, points)
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestBuildUnifiedSeries_SingleSeriesIsNotAnError(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	start, end := day(2024, 3, 1), day(2024, 3, 31)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{
		cryptoSample(day(2024, 3, 10), 100, 60, 40),
	}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{}, nil)

	points, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))
	require.NoError(t, err)
	require.Len(t, points, 1)

	require.NotNil(t, points[0].Crypto)
	assert.Nil(t, points[0].Finance, "absent series is omitted, not zero-filled")
}

func TestBuildUnifiedSeries_ExcludedSourceIsNotFetched(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	sourceA := uuid.New()
	start, end := day(2024, 3, 1), day(2024, 3, 31)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{
		statement(sourceA, "Checking", day(2024, 3, 3), 500),
	}, nil)

	opts := optionsFor(start, end)
	opts.IncludeCrypto = false

	points, err := service.BuildUnifiedSeries(ctx, opts)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Nil(t, points[0].Crypto)

	mockCryptoRepo.AssertNotCalled(t, "GetRange")
	mockFinanceRepo.AssertExpectations(t)
}

func TestBuildUnifiedSeries_Idempotent(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	sourceA := uuid.New()
	start, end := day(2024, 3, 1), day(2024, 3, 5)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{
		cryptoSample(day(2024, 3, 1), 100, 60, 40),
		cryptoSample(day(2024, 3, 5), 200, 120, 80),
	}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{
		statement(sourceA, "Checking", day(2024, 3, 3), 500),
	}, nil)

	first, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))
	require.NoError(t, err)
	second, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Timestamp.Equal(second[i].Timestamp))
		assert.True(t, first[i].Crypto.TotalValueUSD.Equal(second[i].Crypto.TotalValueUSD))
		assert.True(t, first[i].Finance.TotalBalance.Equal(second[i].Finance.TotalBalance))
	}
}

func TestBuildUnifiedSeries_RepositoryErrorIsPropagated(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	start, end := day(2024, 3, 1), day(2024, 3, 31)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return(nil, errors.New("connection refused"))
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{}, nil).Maybe()

	points, err := service.BuildUnifiedSeries(ctx, optionsFor(start, end))

	assert.Nil(t, points)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load crypto samples")
}

func TestBuildUnifiedSeries_DefaultWindow(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, nil)

	// With no explicit range, the engine asks for the last 30 days
	thirtyDays := func(start, end time.Time) bool {
		return end.Sub(start) == 30*24*time.Hour
	}

	mockCryptoRepo.On("GetRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.CryptoSample{
		cryptoSample(day(2024, 3, 1), 100, 60, 40),
	}, nil).Run(func(args mock.Arguments) {
		start := args.Get(1).(time.Time)
		end := args.Get(2).(time.Time)
		assert.True(t, thirtyDays(start, end))
	})
	mockFinanceRepo.On("GetRange", mock.Anything, mock.Anything, mock.Anything).Return([]domain.FinanceStatement{}, nil)

	_, err := service.BuildUnifiedSeries(ctx, DefaultSeriesOptions())
	require.NoError(t, err)

	mockCryptoRepo.AssertExpectations(t)
}

func TestBuildChart_HandsSeriesToRenderer(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)
	mockRenderer := new(MockChartRenderer)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, mockRenderer)

	start, end := day(2024, 3, 1), day(2024, 3, 5)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{
		cryptoSample(day(2024, 3, 1), 100, 60, 40),
	}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{}, nil)

	image := []byte{0x89, 'P', 'N', 'G'}
	mockRenderer.On("RenderSeries", ctx, mock.MatchedBy(func(points []domain.UnifiedPoint) bool {
		return len(points) == 1
	})).Return(image, nil)

	got, err := service.BuildChart(ctx, optionsFor(start, end))
	require.NoError(t, err)
	assert.Equal(t, image, got)

	mockRenderer.AssertExpectations(t)
}

func TestBuildChart_NoDataSkipsRenderer(t *testing.T) {
	ctx := context.Background()
	mockCryptoRepo := new(MockCryptoSampleRepository)
	mockFinanceRepo := new(MockFinanceStatementRepository)
	mockRenderer := new(MockChartRenderer)

	service := newTestService(mockCryptoRepo, mockFinanceRepo, mockRenderer)

	start, end := day(2024, 3, 1), day(2024, 3, 31)
	mockCryptoRepo.On("GetRange", mock.Anything, start, end).Return([]domain.CryptoSample{}, nil)
	mockFinanceRepo.On("GetRange", mock.Anything, start, end).Return([]domain.FinanceStatement{}, nil)

	_, err := service.BuildChart(ctx, optionsFor(start, end))

	assert.ErrorIs(t, err, domain.ErrNoData)
	mockRenderer.AssertNotCalled(t, "RenderSeries")
}
