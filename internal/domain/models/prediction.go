package models

// PredictRequest is the inbound prediction request. Quantity defaults to
// 1000 kg when omitted.
type PredictRequest struct {
	Commodity  string  `json:"commodity" query:"commodity" validate:"required"`
	Date       string  `json:"date" query:"date" validate:"required"`
	MarketName string  `json:"market_name" query:"market"`
	Quantity   float64 `json:"quantity" query:"quantity" default:"1000" validate:"gte=0"`
}

// PredictionResult is produced fresh per request and never persisted.
type PredictionResult struct {
	PredictedPrice     float64 `json:"predicted_price"`
	Confidence         float64 `json:"confidence"`
	Method             string  `json:"method"`
	ModelUsed          string  `json:"model_used"`
	Commodity          string  `json:"commodity"`
	Market             string  `json:"market"`
	InputFeaturesShape []int   `json:"input_features_shape"`
	RawPrediction      float64 `json:"raw_prediction"`
	PriceBoundsApplied bool    `json:"price_bounds_applied"`
}

// ModelInfo is one row of the /models listing.
type ModelInfo struct {
	Filename  string `json:"filename"`
	Commodity string `json:"commodity"`
	Market    string `json:"market"`
	Loaded    bool   `json:"loaded"`
}

// ModelList is the /models response body.
type ModelList struct {
	TotalModels int         `json:"total_models"`
	Models      []ModelInfo `json:"models"`
}

// HealthStatus is the /health response body.
type HealthStatus struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	RuntimeVersion  string `json:"runtime_version"`
	ModelsLoaded    int    `json:"models_loaded"`
	ModelsAvailable int    `json:"models_available"`
}

// HistoryRecord is the audit row written to the configured history backend.
// It mirrors request and outcome; the PredictionResult itself stays in-memory.
type HistoryRecord struct {
	Timestamp      int64   `json:"timestamp"`
	Commodity      string  `json:"commodity"`
	Market         string  `json:"market"`
	Date           string  `json:"date"`
	Quantity       float64 `json:"quantity"`
	PredictedPrice float64 `json:"predicted_price"`
	RawPrediction  float64 `json:"raw_prediction"`
	ModelUsed      string  `json:"model_used"`
	LatencyMS      int64   `json:"latency_ms"`
}
