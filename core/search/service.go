package search

//go:generate mockery --name=SettingsProvider -r --case underscore --with-expecter --structname SettingsProvider --filename settings_provider.go --output=./mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-module/carbon/v2"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/credential"
	"github.com/goto/metasearch/core/settings"
	"github.com/goto/metasearch/pkg/statsd"
	"github.com/goto/salt/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultCollectionTimeout = 10 * time.Second

// SettingsProvider returns the current preference snapshot.
type SettingsProvider interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Service runs the search pipeline: authenticate, normalize, resolve the
// collections, search them concurrently and aggregate.
type Service struct {
	logger            log.Logger
	settings          SettingsProvider
	registry          *collection.Registry
	engine            *Engine
	statsdReporter    *statsd.Reporter
	collectionTimeout time.Duration
	now               func() carbon.Carbon

	requestCounter metric.Int64Counter
	tracer         trace.Tracer
}

type ServiceOption func(*Service)

func ServiceWithStatsDReporter(reporter *statsd.Reporter) ServiceOption {
	return func(s *Service) {
		s.statsdReporter = reporter
	}
}

// ServiceWithCollectionTimeout bounds each per-collection lookup.
func ServiceWithCollectionTimeout(timeout time.Duration) ServiceOption {
	return func(s *Service) {
		if timeout > 0 {
			s.collectionTimeout = timeout
		}
	}
}

func ServiceWithClock(now func() carbon.Carbon) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

type ServiceDeps struct {
	Settings SettingsProvider
	Registry *collection.Registry
	Engine   *Engine
}

func NewService(logger log.Logger, deps ServiceDeps, opts ...ServiceOption) *Service {
	requestCounter, err := otel.Meter("github.com/goto/metasearch/core/search").
		Int64Counter("metasearch.search.request")
	if err != nil {
		otel.Handle(err)
	}

	s := &Service{
		logger:            logger,
		settings:          deps.Settings,
		registry:          deps.Registry,
		engine:            deps.Engine,
		collectionTimeout: defaultCollectionTimeout,
		now:               func() carbon.Carbon { return carbon.Now() },
		requestCounter:    requestCounter,
		tracer:            otel.Tracer("github.com/goto/metasearch/core/search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search executes one request. AuthError, ValidationError and
// collection.NotFoundError abort the request before any lookup; failures of
// single collections are reported inside the response.
func (s *Service) Search(ctx context.Context, raw RawParams) (resp Response, err error) {
	ctx, span := s.tracer.Start(ctx, "search.Service.Search")
	defer func() {
		s.countRequest(ctx, err)
		if err != nil {
			span.SetStatus(codes.Error, ErrorClass(err))
		}
		span.End()
	}()

	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return Response{}, err
	}

	if err := credential.Verify(raw.Key, prefs.Credential()); err != nil {
		return Response{}, err
	}

	q, err := Normalize(raw, s.now())
	if err != nil {
		return Response{}, err
	}

	catalog, err := s.registry.Catalog(ctx, prefs.CollectionPreferences())
	if err != nil {
		return Response{}, err
	}
	trees, err := catalog.ResolveStrict(q.Trees)
	if err != nil {
		var invalid collection.InvalidNameError
		if errors.As(err, &invalid) {
			return Response{}, ValidationError{Field: "trees", Value: invalid.Name, Kind: KindInvalidTree}
		}
		return Response{}, err
	}
	trees = catalog.Ordered(trees)

	meta := Metadata{DatabaseName: prefs.DatabaseName, DatabaseURL: prefs.DatabaseURL}
	if q.Empty() {
		return Aggregate(meta, q, trees, nil), nil
	}

	results := s.fanOut(ctx, trees, q, prefs)
	return Aggregate(meta, q, trees, results), nil
}

func (s *Service) fanOut(ctx context.Context, trees []string, q Query, prefs settings.Settings) map[string]CollectionResult {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]CollectionResult, len(trees))
	)
	for _, tree := range trees {
		wg.Add(1)
		go func(tree string) {
			defer wg.Done()
			result := s.searchCollection(ctx, tree, q, prefs)
			mu.Lock()
			results[tree] = result
			mu.Unlock()
		}(tree)
	}
	wg.Wait()
	return results
}

func (s *Service) searchCollection(ctx context.Context, tree string, q Query, prefs settings.Settings) CollectionResult {
	ctx, span := s.tracer.Start(ctx, "search.Service.searchCollection",
		trace.WithAttributes(attribute.String("tree", tree)))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.collectionTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.engine.Search(ctx, tree, q, prefs.MaxHit, prefs.DatabaseURL)
	if s.statsdReporter != nil {
		m := s.statsdReporter.Timing("collectionSearch", time.Since(start)).Tag("tree", tree)
		if err != nil {
			m.Failure(err)
		} else {
			m.Success()
			s.statsdReporter.Histogram("collectionHits", float64(len(result.Entries))).
				Tag("tree", tree).
				Publish()
		}
		m.Publish()
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "collection search failed")
		s.logger.Warn("collection search failed", "collection", tree, "err", err)
		return CollectionResult{
			Entries: []Entry{},
			Error:   fmt.Sprintf("search %q failed: %s", tree, err),
		}
	}
	return result
}

func (s *Service) countRequest(ctx context.Context, err error) {
	if s.requestCounter == nil {
		return
	}
	s.requestCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", err == nil),
		attribute.String("class", ErrorClass(err)),
	))
}
