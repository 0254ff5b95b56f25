package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stormrisk/internal/climate"
	"stormrisk/internal/predict"
	"stormrisk/internal/types"
)

type fakePredictService struct {
	coord types.Coordinate
	calls int
}

func (f *fakePredictService) Predict(_ context.Context, coord types.Coordinate, _ time.Time) (predict.Prediction, error) {
	f.calls++
	f.coord = coord
	return predict.Prediction{
		Location:   predict.Location{Latitude: coord.Latitude, Longitude: coord.Longitude},
		RiskLevel:  types.RiskMinimal,
		DataSource: "heuristic",
	}, nil
}

type fakeClimateService struct {
	calls int
}

func (f *fakeClimateService) Outlook(types.Coordinate) []climate.MonthOutlook {
	f.calls++
	return []climate.MonthOutlook{}
}

func (f *fakeClimateService) Summarize(types.Coordinate) climate.Summary {
	return climate.Summary{}
}

func newTestApp(predictSvc predict.Service, climateSvc climate.Service) *App {
	gin.SetMode(gin.TestMode)
	app := &App{
		router:         gin.New(),
		logger:         slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		predictService: predictSvc,
		climateService: climateSvc,
	}
	app.registerRoutes()
	return app
}

func postJSON(app *App, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestHandlePredict_ZeroLatitudeIsValid(t *testing.T) {
	svc := &fakePredictService{}
	app := newTestApp(svc, &fakeClimateService{})

	w := postJSON(app, "/predict", `{"latitude": 0, "longitude": 101.5, "date": "2026-09-15"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, 0.0, svc.coord.Latitude)
	assert.Equal(t, 101.5, svc.coord.Longitude)
}

func TestHandlePredict_OutOfBoundsLatitudeRejected(t *testing.T) {
	svc := &fakePredictService{}
	app := newTestApp(svc, &fakeClimateService{})

	w := postJSON(app, "/predict", `{"latitude": 91, "longitude": 0, "date": "2026-09-15"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
	assert.Contains(t, w.Body.String(), "latitude")
}

func TestHandlePredict_MissingDateRejected(t *testing.T) {
	svc := &fakePredictService{}
	app := newTestApp(svc, &fakeClimateService{})

	w := postJSON(app, "/predict", `{"latitude": 10, "longitude": 20}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, svc.calls)
}

func TestHandleForecast_ZeroCoordinateIsValid(t *testing.T) {
	climateSvc := &fakeClimateService{}
	app := newTestApp(&fakePredictService{}, climateSvc)

	w := postJSON(app, "/forecast", `{"latitude": 0, "longitude": 0}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, climateSvc.calls)
}
