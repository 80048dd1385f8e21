package api

import (
	"fmt"
	"net/http"
	"strconv"

	"MandiPredict/internal/domain/models"
	"MandiPredict/internal/usecase"
	xhttp "MandiPredict/pkg/http"
	xlogger "MandiPredict/pkg/logger"
	"MandiPredict/pkg/util"

	"github.com/labstack/echo/v4"
)

const defaultQuantity = 1000

// PredictHandler exposes the prediction service over HTTP.
type PredictHandler struct {
	log *xlogger.Logger
	svc *usecase.PredictionService
}

func NewPredictHandler(log *xlogger.Logger, svc *usecase.PredictionService) *PredictHandler {
	return &PredictHandler{log: log, svc: svc}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/models", h.Models)
	e.POST("/predict", h.Predict)
	e.GET("/predict/:commodity", h.PredictGet)
}

func (h *PredictHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Health())
}

func (h *PredictHandler) Models(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Models())
}

func (h *PredictHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
	}
	return h.respond(c, *req)
}

func (h *PredictHandler) PredictGet(c echo.Context) error {
	quantity := float64(defaultQuantity)
	if q := c.QueryParam("quantity"); q != "" {
		parsed, err := strconv.ParseFloat(q, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error": fmt.Sprintf("Invalid quantity: %s", q),
			})
		}
		quantity = parsed
	}

	date := c.QueryParam("date")
	if date == "" {
		date = util.Today()
	}

	req := models.PredictRequest{
		Commodity:  c.Param("commodity"),
		Date:       date,
		MarketName: c.QueryParam("market"),
		Quantity:   quantity,
	}
	return h.respond(c, req)
}

func (h *PredictHandler) respond(c echo.Context, req models.PredictRequest) error {
	result, err := h.svc.Predict(c.Request().Context(), req)
	if err != nil {
		h.log.Error("prediction failed",
			xlogger.String("commodity", req.Commodity),
			xlogger.String("market", req.MarketName),
			xlogger.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    result,
	})
}
