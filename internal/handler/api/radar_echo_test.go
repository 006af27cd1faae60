package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeRadar/internal/domain/models"
	"TradeRadar/internal/repository"
	"TradeRadar/internal/usecase"
	"TradeRadar/pkg/cache"
	"TradeRadar/pkg/config"
	xhttp "TradeRadar/pkg/http"
	"TradeRadar/pkg/logger"
)

type stubSource struct{}

func (stubSource) FetchTicker24hAll(context.Context) ([]models.RawTicker, error) {
	return []models.RawTicker{
		{Symbol: "BTCUSDT", LastPrice: "50000", PriceChangePercent: "5", QuoteVolume: "2000000000"},
	}, nil
}

func (stubSource) FetchCandles(_ context.Context, _, _ string, _ int) ([]models.Candle, error) {
	out := make([]models.Candle, 200)
	for i := range out {
		p := 100 + float64(i)*0.5
		out[i] = models.Candle{Open: p, High: p + 1, Low: p - 1, Close: p}
	}
	return out, nil
}

func (stubSource) FetchRecentTrades(context.Context, string, int) ([]models.RawTrade, error) {
	return []models.RawTrade{{Price: "50000", Qty: "20", IsBuyerMaker: false, Time: 1700000000000}}, nil
}

type stubNotifier struct{}

func (stubNotifier) Notify(context.Context, string) error { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, string)       {}
func (stubMetrics) RecordCacheLookup(string, string) {}
func (stubMetrics) RecordStageBuild(string, float64) {}
func (stubMetrics) RecordWhaleEvent(string)          {}
func (stubMetrics) RecordNotification(string)        {}
func (stubMetrics) RecordTopScore(string, float64)   {}
func (stubMetrics) RecordRegimeIndex(float64)        {}

func newHandler(t *testing.T) *RadarEchoHandler {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)

	log, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	require.NoError(t, err)

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { mem.Close() })

	radar := usecase.NewRadar(cfg, stubSource{}, mem, stubNotifier{}, repository.NopPublisher{}, stubMetrics{}, log)
	return NewRadarEchoHandler(log, radar)
}

func doRequest(t *testing.T, h *RadarEchoHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var env xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestTopPicksEndpoint(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/top")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)

	var res models.TopPicksResult
	b, _ := json.Marshal(env.Data)
	require.NoError(t, json.Unmarshal(b, &res))
	require.Len(t, res.Picks, 1)
	assert.Equal(t, "BTC", res.Picks[0].Symbol)
	assert.NotNil(t, res.Regime)
}

func TestTopPicksLimitParam(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/top?limit=99")
	// limit above the validation ceiling is rejected
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestScalpEndpoint(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/scalp")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusOK, env.Status)
}

func TestWhalesEndpoint(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/whales")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var res models.WhaleResult
	b, _ := json.Marshal(env.Data)
	require.NoError(t, json.Unmarshal(b, &res))
	require.Len(t, res.Events, 1)
	assert.Equal(t, models.SideBuy, res.Events[0].Side)
}

func TestIndicatorsEndpoint(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/indicators?symbol=BTC&interval=4h")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	var set models.IndicatorSet
	b, _ := json.Marshal(env.Data)
	require.NoError(t, json.Unmarshal(b, &set))
	assert.Equal(t, "BTC", set.Symbol)
	assert.NotNil(t, set.EMA20)
}

func TestIndicatorsMissingSymbolRejected(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/api/indicators")
	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestHealthz(t *testing.T) {
	h := newHandler(t)
	rec := doRequest(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
