package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())
	assert.NoError(t, DashboardLayout{Cards: []string{CardGoals, CardTasks}}.Validate())
	assert.NoError(t, DashboardLayout{Cards: []string{}}.Validate())

	assert.Error(t, DashboardLayout{}.Validate())
	assert.Error(t, DashboardLayout{Cards: []string{"weather"}}.Validate())
	assert.Error(t, DashboardLayout{Cards: []string{CardTasks, CardTasks}}.Validate())
}

func TestDecodeLayoutFallsBackToDefault(t *testing.T) {
	layout, ok := DecodeLayout(`{"cards":["habits","summary"]}`)
	require.True(t, ok)
	assert.Equal(t, []string{CardHabits, CardSummary}, layout.Cards)

	for _, raw := range []string{`not json`, `{"cards":["weather"]}`, `{}`} {
		layout, ok := DecodeLayout(raw)
		assert.False(t, ok, raw)
		assert.Equal(t, DefaultLayout(), layout, raw)
	}
}

func TestLayoutEncodeRoundTrip(t *testing.T) {
	raw, err := DefaultLayout().Encode()
	require.NoError(t, err)

	layout, ok := DecodeLayout(raw)
	require.True(t, ok)
	assert.Equal(t, DefaultLayout(), layout)
}
