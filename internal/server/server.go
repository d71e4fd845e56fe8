package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/goto/metasearch/internal/server/middleware"
	handlersv1 "github.com/goto/metasearch/internal/server/v1"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/metasearch/pkg/statsd"
	"github.com/goto/salt/log"
	saltmux "github.com/goto/salt/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
)

type Config struct {
	Host string `yaml:"host" mapstructure:"host" default:"0.0.0.0"`
	Port int    `yaml:"port" mapstructure:"port" default:"8080"`

	// Route the aggregator calls.
	Route string `yaml:"route" mapstructure:"route" default:"/MetaSearch"`

	RequestTimeout    time.Duration `yaml:"request_timeout" mapstructure:"request_timeout" default:"30s"`
	CollectionTimeout time.Duration `yaml:"collection_timeout" mapstructure:"collection_timeout" default:"10s"`

	// SurnameMatch is either "exact" or "prefix".
	SurnameMatch string `yaml:"surname_match" mapstructure:"surname_match" default:"exact"`
}

func (cfg Config) addr() string { return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port) }

// NewRouter builds the HTTP routes of the search endpoint.
func NewRouter(
	config Config,
	logger log.Logger,
	nrApp *newrelic.Application,
	statsdReporter *statsd.Reporter,
	searchService handlersv1.SearchService,
) http.Handler {
	v1Handler := handlersv1.NewAPIServer(logger, searchService)

	route := config.Route
	if route == "" {
		route = "/MetaSearch"
	}

	router := mux.NewRouter()
	router.Use(
		middleware.NewRelic(nrApp),
		middleware.StatsD(statsdReporter),
	)
	router.HandleFunc("/ping", v1Handler.Ping).Methods(http.MethodGet)
	router.HandleFunc(route, v1Handler.Search).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/v1/search", v1Handler.Search).Methods(http.MethodGet, http.MethodPost)

	var h http.Handler = router
	if config.RequestTimeout > 0 {
		h = http.TimeoutHandler(h, config.RequestTimeout, `{"class":"internal","message":"request timed out"}`)
	}
	return handlers.CompressHandler(h)
}

func Serve(
	ctx context.Context,
	config Config,
	logger log.Logger,
	pgClient *postgres.Client,
	nrApp *newrelic.Application,
	statsdReporter *statsd.Reporter,
	searchService handlersv1.SearchService,
) error {
	handler := NewRouter(config, logger, nrApp, statsdReporter, searchService)

	defer func() {
		if pgClient != nil {
			logger.Warn("closing db...")
			if err := pgClient.Close(); err != nil {
				logger.Error("error when closing db", "err", err)
			}
			logger.Warn("db closed...")
		}
	}()

	logger.Info("Starting server", "http_port", config.addr(), "route", config.Route)
	if err := saltmux.Serve(
		ctx,
		saltmux.WithHTTPTarget(config.addr(), &http.Server{
			Handler:      handler,
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		}),
		saltmux.WithGracePeriod(5*time.Second),
	); !errors.Is(err, context.Canceled) {
		logger.Error("mux serve error", "err", err)
	}

	logger.Info("server stopped")
	return nil
}
