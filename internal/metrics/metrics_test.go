package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func counterValue(t *testing.T, m *HTTP, status string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "dashboard_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "status" && label.GetValue() == status {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestObserveCountsByStatus(t *testing.T) {
	m := NewHTTP()

	m.Begin()
	m.Observe("GET", "/tasks/{id}", 200, 10*time.Millisecond)
	m.Begin()
	m.Observe("GET", "/tasks/{id}", 404, time.Millisecond)
	m.Begin()
	m.Observe("GET", "/tasks/{id}", 404, time.Millisecond)

	assert.Equal(t, float64(1), counterValue(t, m, "200"))
	assert.Equal(t, float64(2), counterValue(t, m, "404"))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := NewHTTP()
	m.Begin()
	m.Observe("POST", "/auth/login", 200, time.Millisecond)

	var ctx fasthttp.RequestCtx
	ctx.Request.SetRequestURI("/metrics")
	m.Handler()(&ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.True(t, strings.Contains(string(ctx.Response.Body()), "dashboard_http_requests_total"))
}
