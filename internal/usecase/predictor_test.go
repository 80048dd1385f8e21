package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MandiPredict/internal/domain/models"
	"MandiPredict/internal/features"
	"MandiPredict/internal/inference"
	"MandiPredict/internal/registry"
	"MandiPredict/pkg/cache"
	"MandiPredict/pkg/logger"
)

type fixedModel struct{ value float32 }

func (m fixedModel) Predict([]float32) (float32, error) { return m.value, nil }

type fixedLoader struct{ value float32 }

func (l fixedLoader) Load(string) (inference.Predictor, error) {
	return fixedModel{value: l.value}, nil
}

func (l fixedLoader) LoadFallback(string) (inference.Predictor, error) {
	return fixedModel{value: l.value}, nil
}

type capturingSink struct {
	records []models.HistoryRecord
}

func (s *capturingSink) Record(_ context.Context, rec models.HistoryRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *capturingSink) Close() error { return nil }

func newTestService(t *testing.T, rawPrediction float32, opts ...Option) *PredictionService {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"rice_kurnool.model", "rice_tirupati.model", "banana_kurnool.model"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644))
	}

	reg := registry.New(dir, registry.WithExtension(".model"))
	require.NoError(t, reg.Scan())

	modelCache := inference.NewCache(fixedLoader{value: rawPrediction})
	builder := features.NewBuilder(features.WithClock(func() time.Time {
		return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	}))

	return NewPredictionService(reg, modelCache, builder, logger.Nop(), opts...)
}

func TestPredictEndToEnd(t *testing.T) {
	svc := newTestService(t, 99999)

	result, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity:  "Rice",
		MarketName: "Kurnool",
		Date:       "2026-02-15",
		Quantity:   1000,
	})
	require.NoError(t, err)

	assert.Equal(t, "rice_kurnool.model", result.ModelUsed)
	assert.Equal(t, "rice", result.Commodity)
	assert.Equal(t, "kurnool", result.Market)
	assert.Equal(t, 5000.0, result.PredictedPrice)
	assert.Equal(t, 99999.0, result.RawPrediction)
	assert.True(t, result.PriceBoundsApplied)
	assert.Equal(t, 0.88, result.Confidence)
	assert.Equal(t, "ML Model (ONNX)", result.Method)
	assert.Equal(t, []int{1, 10}, result.InputFeaturesShape)
}

func TestPredictInRangePrice(t *testing.T) {
	svc := newTestService(t, 3421.7)

	result, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity: "rice",
		Date:      "2026-02-15",
		Quantity:  500,
	})
	require.NoError(t, err)
	assert.Equal(t, 3421.7, result.PredictedPrice)
	assert.Equal(t, result.RawPrediction, result.PredictedPrice)
}

func TestPredictUnknownCommodity(t *testing.T) {
	svc := newTestService(t, 3000)

	_, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity: "mango",
		Date:      "2026-02-15",
		Quantity:  1000,
	})
	assert.ErrorIs(t, err, registry.ErrNoMatch)
}

func TestPredictInvalidDate(t *testing.T) {
	svc := newTestService(t, 3000)

	_, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity: "rice",
		Date:      "15-02-2026",
		Quantity:  1000,
	})
	assert.ErrorIs(t, err, features.ErrInvalidDate)
}

func TestPredictResponseCache(t *testing.T) {
	mem := cache.NewMemoryCache()
	sink := &capturingSink{}
	svc := newTestService(t, 3000,
		WithResponseCache(mem, time.Minute),
		WithHistorySink(sink),
	)

	req := models.PredictRequest{
		Commodity:  "rice",
		MarketName: "Kurnool",
		Date:       "2026-02-15",
		Quantity:   1000,
	}

	first, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Only the cache miss reaches the sink.
	assert.Len(t, sink.records, 1)
	assert.Equal(t, "rice_kurnool.model", sink.records[0].ModelUsed)
	assert.Equal(t, 3000.0, sink.records[0].PredictedPrice)
}

func TestPredictResponseCacheCaseInsensitive(t *testing.T) {
	mem := cache.NewMemoryCache()
	sink := &capturingSink{}
	svc := newTestService(t, 3000,
		WithResponseCache(mem, time.Minute),
		WithHistorySink(sink),
	)

	_, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity:  "Rice",
		MarketName: "Kurnool",
		Date:       "2026-02-15",
		Quantity:   1000,
	})
	require.NoError(t, err)

	// Same request in different case hits the same cache entry.
	_, err = svc.Predict(context.Background(), models.PredictRequest{
		Commodity:  "rice",
		MarketName: "KURNOOL",
		Date:       "2026-02-15",
		Quantity:   1000,
	})
	require.NoError(t, err)

	assert.Len(t, sink.records, 1)
}

func TestHealth(t *testing.T) {
	svc := newTestService(t, 3000, WithServiceName("MandiPredict ML Service"))

	before := svc.Health()
	assert.Equal(t, "healthy", before.Status)
	assert.Equal(t, "MandiPredict ML Service", before.Service)
	assert.Equal(t, 3, before.ModelsAvailable)
	assert.Equal(t, 0, before.ModelsLoaded)

	_, err := svc.Predict(context.Background(), models.PredictRequest{
		Commodity: "rice",
		Date:      "2026-02-15",
		Quantity:  1000,
	})
	require.NoError(t, err)

	after := svc.Health()
	assert.Equal(t, 1, after.ModelsLoaded)
}

func TestModels(t *testing.T) {
	svc := newTestService(t, 3000)

	list := svc.Models()
	assert.Equal(t, 3, list.TotalModels)
	require.Len(t, list.Models, 3)
	assert.Equal(t, "banana_kurnool.model", list.Models[0].Filename)
	assert.Equal(t, "banana", list.Models[0].Commodity)
	assert.False(t, list.Models[0].Loaded)
}
