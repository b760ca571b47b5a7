package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorRequiredCheckFailureDegrades(t *testing.T) {
	m := New(time.Hour, nil,
		Check{Name: "postgresql", Required: true, Probe: func(context.Context) error { return errors.New("down") }},
		Check{Name: "redis", Probe: func(context.Context) error { return nil }},
	)
	m.Start()
	defer m.Stop()

	status := m.GetStatus()
	assert.False(t, status.Healthy)
	assert.False(t, m.IsOnline())
	assert.Equal(t, map[string]bool{"postgresql": false, "redis": true}, status.Services)
}

func TestMonitorOptionalCheckFailureStaysHealthy(t *testing.T) {
	m := New(time.Hour, nil,
		Check{Name: "postgresql", Required: true, Probe: func(context.Context) error { return nil }},
		Check{Name: "redis", Probe: func(context.Context) error { return errors.New("down") }},
	)
	m.Start()
	defer m.Stop()

	status := m.GetStatus()
	require.True(t, status.Healthy)
	assert.False(t, status.Services["redis"])

	// Returned maps are copies.
	status.Services["redis"] = true
	assert.False(t, m.GetStatus().Services["redis"])
}
