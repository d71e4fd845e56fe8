package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/goto/metasearch/pkg/telemetry"
	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	nrApp, cleanUp, err := telemetry.Init(context.Background(), telemetry.Config{
		AppName:    "metasearch",
		AppVersion: "0.1.0",
	}, log.NewNoop())
	require.NoError(t, err)

	assert.Nil(t, nrApp)
	assert.NotPanics(t, cleanUp)
}

func TestInitNewRelicWithoutLicense(t *testing.T) {
	_, _, err := telemetry.Init(context.Background(), telemetry.Config{
		AppName:  "metasearch",
		NewRelic: telemetry.NewRelicConfig{Enabled: true},
	}, log.NewNoop())
	assert.Error(t, err)
}

func TestInitOpenTelemetryShutdown(t *testing.T) {
	// exporters connect lazily, so no collector is needed to start and stop
	_, cleanUp, err := telemetry.Init(context.Background(), telemetry.Config{
		AppName:    "metasearch",
		AppVersion: "0.1.0",
		OpenTelemetry: telemetry.OpenTelemetryConfig{
			Enabled:                true,
			CollectorAddr:          "127.0.0.1:4317",
			PeriodicReadInterval:   time.Second,
			TraceSampleProbability: 1,
		},
	}, log.NewNoop())
	require.NoError(t, err)
	assert.NotPanics(t, cleanUp)
}
