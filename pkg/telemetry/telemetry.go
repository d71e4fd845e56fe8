package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/goto/salt/log"
	"github.com/newrelic/go-agent/v3/newrelic"
)

const (
	gracePeriod    = 5 * time.Second
	defaultAppName = "metasearch"
)

type Config struct {
	// AppVersion is set from the build, not from the config file.
	AppVersion string `yaml:"-" mapstructure:"-"`

	AppName       string              `yaml:"app_name" mapstructure:"app_name" default:"metasearch"`
	NewRelic      NewRelicConfig      `yaml:"newrelic" mapstructure:"newrelic"`
	OpenTelemetry OpenTelemetryConfig `yaml:"open_telemetry" mapstructure:"open_telemetry"`
}

// Init sets up the global OpenTelemetry providers and the New Relic
// application. The returned cleanup flushes both; nrApp is nil when New
// Relic is disabled.
func Init(ctx context.Context, cfg Config, logger log.Logger) (nrApp *newrelic.Application, cleanUp func(), err error) {
	if cfg.AppName == "" {
		cfg.AppName = defaultAppName
	}

	shutdownOTLP, err := initOTLP(ctx, cfg, logger)
	if err != nil {
		return nil, noOp, fmt.Errorf("init opentelemetry: %w", err)
	}
	cleanups := shutdowns{shutdownOTLP}

	nrApp, err = initNewRelicMonitor(cfg.AppName, cfg.NewRelic, logger)
	if err != nil {
		cleanups.run()
		return nil, noOp, err
	}
	if nrApp != nil {
		cleanups = append(cleanups, func() { nrApp.Shutdown(gracePeriod) })
	}

	return nrApp, cleanups.run, nil
}
