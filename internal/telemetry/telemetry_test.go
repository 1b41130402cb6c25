package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/telemetry"
)

func TestSetupDisabled(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *telemetry.Config
	}{
		{name: "nil config"},
		{name: "no endpoint", cfg: &telemetry.Config{ServiceName: "rpg-companion", Enabled: true}},
		{name: "explicitly off", cfg: &telemetry.Config{ServiceName: "rpg-companion", Endpoint: "http://localhost:4318"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shutdown, err := telemetry.Setup(context.Background(), tc.cfg)
			require.NoError(t, err)
			assert.NoError(t, shutdown(context.Background()))
		})
	}
}

func TestSetupRequiresServiceName(t *testing.T) {
	_, err := telemetry.Setup(context.Background(), &telemetry.Config{
		Endpoint: "http://localhost:4318",
		Enabled:  true,
	})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestSetupWithEndpoint(t *testing.T) {
	// non-routable address; nothing is exported before shutdown
	shutdown, err := telemetry.Setup(context.Background(), &telemetry.Config{
		ServiceName: "rpg-companion-test",
		Endpoint:    "http://192.0.2.1:4318",
		Enabled:     true,
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
