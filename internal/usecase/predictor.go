package usecase

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"MandiPredict/internal/domain/models"
	"MandiPredict/internal/features"
	"MandiPredict/internal/inference"
	"MandiPredict/internal/pricing"
	"MandiPredict/internal/registry"
	"MandiPredict/pkg/cache"
	"MandiPredict/pkg/logger"
)

const (
	// modelConfidence is the fixed confidence reported per prediction.
	modelConfidence = 0.88
	predictMethod   = "ML Model (ONNX)"
)

// Metrics is the recorder interface the service reports into.
type Metrics interface {
	RecordPrediction(commodity, outcome string)
	RecordModelLoad(result string)
	RecordLastPrice(commodity string, price float64)
	RecordLatency(op string, seconds float64)
}

type noopMetrics struct{}

func (noopMetrics) RecordPrediction(string, string) {}
func (noopMetrics) RecordModelLoad(string)          {}
func (noopMetrics) RecordLastPrice(string, float64) {}
func (noopMetrics) RecordLatency(string, float64)   {}

// Option configures PredictionService.
type Option func(*PredictionService)

// WithResponseCache enables caching of prediction responses.
func WithResponseCache(c cache.Service, ttl time.Duration) Option {
	return func(s *PredictionService) {
		s.responses = c
		s.responseTTL = ttl
	}
}

// WithHistorySink sets the audit sink for completed predictions.
func WithHistorySink(sink HistorySink) Option {
	return func(s *PredictionService) {
		s.history = sink
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(s *PredictionService) {
		s.metrics = m
	}
}

// WithPredictTimeout bounds a whole prediction call.
func WithPredictTimeout(d time.Duration) Option {
	return func(s *PredictionService) {
		s.predictTimeout = d
	}
}

// WithServiceName sets the name reported by /health.
func WithServiceName(name string) Option {
	return func(s *PredictionService) {
		s.serviceName = name
	}
}

// PredictionService orchestrates one prediction: resolve an entry, load the
// model, build the feature vector, run inference, clamp the price and merge
// in the entry's display metadata.
type PredictionService struct {
	reg      *registry.Registry
	modelCch *inference.Cache
	builder  *features.Builder
	log      *logger.Logger

	responses      cache.Service
	responseTTL    time.Duration
	history        HistorySink
	metrics        Metrics
	predictTimeout time.Duration
	serviceName    string
}

// NewPredictionService creates the prediction service.
func NewPredictionService(reg *registry.Registry, modelCache *inference.Cache, builder *features.Builder, log *logger.Logger, opts ...Option) *PredictionService {
	s := &PredictionService{
		reg:            reg,
		modelCch:       modelCache,
		builder:        builder,
		log:            log,
		history:        NewNoopSink(),
		metrics:        noopMetrics{},
		predictTimeout: 10 * time.Second,
		serviceName:    "MandiPredict ML Service",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict serves one prediction request. All failures are request-scoped:
// they abort this prediction only and never invalidate the registry or the
// cache for other keys.
func (s *PredictionService) Predict(ctx context.Context, req models.PredictRequest) (models.PredictionResult, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.predictTimeout)
	defer cancel()

	// Commodity and market match case-insensitively, so equivalent requests
	// must share one cache entry.
	cacheKey := fmt.Sprintf("predict:%s:%s:%s:%g",
		strings.ToLower(req.Commodity), strings.ToLower(req.MarketName), req.Date, req.Quantity)
	if s.responses != nil {
		var cached models.PredictionResult
		if err := s.responses.Get(ctx, cacheKey, &cached); err == nil {
			s.metrics.RecordPrediction(req.Commodity, "cache_hit")
			return cached, nil
		}
	}

	result, err := s.predict(ctx, req)
	s.metrics.RecordLatency("predict", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordPrediction(req.Commodity, "error")
		return models.PredictionResult{}, err
	}

	s.metrics.RecordPrediction(req.Commodity, "ok")
	s.metrics.RecordLastPrice(result.Commodity, result.PredictedPrice)

	if s.responses != nil {
		if err := s.responses.Set(ctx, cacheKey, result, s.responseTTL); err != nil {
			s.log.Warn("response cache set failed", logger.Error(err))
		}
	}

	rec := models.HistoryRecord{
		Timestamp:      time.Now().Unix(),
		Commodity:      result.Commodity,
		Market:         result.Market,
		Date:           req.Date,
		Quantity:       req.Quantity,
		PredictedPrice: result.PredictedPrice,
		RawPrediction:  result.RawPrediction,
		ModelUsed:      result.ModelUsed,
		LatencyMS:      time.Since(start).Milliseconds(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.log.Warn("history record failed", logger.Error(err))
	}

	return result, nil
}

func (s *PredictionService) predict(ctx context.Context, req models.PredictRequest) (models.PredictionResult, error) {
	entry, err := s.reg.Resolve(req.Commodity, req.MarketName)
	if err != nil {
		return models.PredictionResult{}, err
	}

	model, err := s.modelCch.GetOrLoad(ctx, entry)
	if err != nil {
		s.metrics.RecordModelLoad("failure")
		return models.PredictionResult{}, err
	}
	s.metrics.RecordModelLoad("success")

	vec, err := s.builder.Build(req.Date, req.Quantity)
	if err != nil {
		return models.PredictionResult{}, err
	}

	raw, err := model.Predict(vec)
	if err != nil {
		return models.PredictionResult{}, fmt.Errorf("inference on %s: %w", entry.Filename, err)
	}

	rawPrice := float64(raw)
	finalPrice := pricing.Clamp(rawPrice, req.Commodity)

	s.log.Info("prediction complete",
		logger.String("commodity", entry.OriginalCommodity),
		logger.String("market", entry.OriginalMarket),
		logger.String("model", entry.Filename),
		logger.Float64("price", finalPrice),
		logger.Float64("raw", rawPrice),
	)

	return models.PredictionResult{
		PredictedPrice:     finalPrice,
		Confidence:         modelConfidence,
		Method:             predictMethod,
		ModelUsed:          entry.Filename,
		Commodity:          entry.OriginalCommodity,
		Market:             entry.OriginalMarket,
		InputFeaturesShape: []int{1, features.VectorSize},
		RawPrediction:      pricing.Round2(rawPrice),
		PriceBoundsApplied: true,
	}, nil
}

// Health reports service status and model inventory counts.
func (s *PredictionService) Health() models.HealthStatus {
	return models.HealthStatus{
		Status:          "healthy",
		Service:         s.serviceName,
		RuntimeVersion:  runtime.Version(),
		ModelsLoaded:    s.reg.LoadedCount(),
		ModelsAvailable: s.reg.Len(),
	}
}

// Models lists the registry index for operators.
func (s *PredictionService) Models() models.ModelList {
	entries := s.reg.Entries()
	infos := make([]models.ModelInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, models.ModelInfo{
			Filename:  e.Filename,
			Commodity: e.OriginalCommodity,
			Market:    e.OriginalMarket,
			Loaded:    e.Loaded(),
		})
	}
	return models.ModelList{
		TotalModels: len(entries),
		Models:      infos,
	}
}
