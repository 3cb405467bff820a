package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"produk/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := metrics.New()
	m.ObserveOperation("create", metrics.OutcomeSuccess)
	m.ObserveOperation("create", metrics.OutcomeSuccess)
	m.ObserveOperation("delete", metrics.OutcomeNotFound)

	count, err := testutil.GatherAndCount(m.Registry(), "products_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestObserveOperation_NilReceiver(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() { m.ObserveOperation("list", metrics.OutcomeSuccess) })
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := metrics.New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_request_duration_seconds_count{method="GET",route="/ping",status="200"} 1`)
}
