package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MandiPredict/internal/features"
	"MandiPredict/internal/inference"
	"MandiPredict/internal/registry"
	"MandiPredict/internal/usecase"
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

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"rice_kurnool.onnx", "tomato_madanapalle.onnx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("stub"), 0o644))
	}

	reg := registry.New(dir)
	require.NoError(t, reg.Scan())

	svc := usecase.NewPredictionService(
		reg,
		inference.NewCache(fixedLoader{value: 3000}),
		features.NewBuilder(features.WithClock(func() time.Time {
			return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		})),
		logger.Nop(),
	)

	e := echo.New()
	NewPredictHandler(logger.Nop(), svc).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &parsed))
	return rec, parsed
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(2), body["models_available"])
	assert.Equal(t, float64(0), body["models_loaded"])
	assert.NotEmpty(t, body["runtime_version"])
}

func TestModelsEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/models", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total_models"])

	models, ok := body["models"].([]interface{})
	require.True(t, ok)
	require.Len(t, models, 2)
	first := models[0].(map[string]interface{})
	assert.Equal(t, "rice_kurnool.onnx", first["filename"])
	assert.Equal(t, false, first["loaded"])
}

func TestPredictPost(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/predict",
		`{"commodity":"Rice","market_name":"Kurnool","date":"2026-02-15","quantity":1000}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3000.0, data["predicted_price"])
	assert.Equal(t, "rice_kurnool.onnx", data["model_used"])
	assert.Equal(t, 0.88, data["confidence"])
	assert.Equal(t, "ML Model (ONNX)", data["method"])
	assert.Equal(t, true, data["price_bounds_applied"])
}

func TestPredictPostMissingCommodity(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/predict",
		`{"date":"2026-02-15"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: commodity", body["error"])
}

func TestPredictPostMissingDate(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/predict",
		`{"commodity":"rice"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: date", body["error"])
}

func TestPredictPostDefaultQuantity(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/predict",
		`{"commodity":"rice","date":"2026-02-15"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestPredictPostUnknownCommodity(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodPost, "/predict",
		`{"commodity":"mango","date":"2026-02-15"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "no suitable model")
}

func TestPredictGet(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/predict/Tomato?market=Madanapalle&date=2026-02-15&quantity=500", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "tomato_madanapalle.onnx", data["model_used"])
	assert.Equal(t, 3000.0, data["predicted_price"])
}

func TestPredictGetMalformedQuantity(t *testing.T) {
	e := newTestServer(t)

	rec, body := doJSON(t, e, http.MethodGet, "/predict/rice?quantity=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid quantity: abc", body["error"])
}

func TestPredictGetDefaults(t *testing.T) {
	e := newTestServer(t)

	// Date defaults to today, quantity to 1000.
	rec, body := doJSON(t, e, http.MethodGet, "/predict/rice", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}
