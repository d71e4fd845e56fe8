package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/esapi"
	"github.com/goto/salt/log"
	"github.com/newrelic/go-agent/v3/integrations/nrelasticsearch-v7"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultIndex = "metasearch-persons"

type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled" default:"false"`
	Brokers string `yaml:"brokers" mapstructure:"brokers" default:"http://localhost:9200"`
	Index   string `yaml:"index" mapstructure:"index" default:"metasearch-persons"`
}

// extract error reason from an elasticsearch response
// returns the raw message in case it fails
func errorReasonFromResponse(res *esapi.Response) string {
	var (
		response struct {
			Error struct {
				Reason string `json:"reason"`
			} `json:"error"`
		}
		copy bytes.Buffer
	)
	reader := io.TeeReader(res.Body, &copy)
	err := json.NewDecoder(reader).Decode(&response)
	if err != nil {
		return fmt.Sprintf("raw response = %s", copy.String())
	}
	return response.Error.Reason
}

// helper for decorating unsuccesful invocations of the es REST API
// (transport errors)
func elasticSearchError(err error) error {
	return fmt.Errorf("elasticsearch error: %w", err)
}

type Client struct {
	client *elasticsearch.Client
	logger log.Logger
	index  string

	opDuration metric.Int64Histogram
}

type ClientOption func(*Client)

// WithClient replaces the client built from Config.Brokers.
func WithClient(cli *elasticsearch.Client) ClientOption {
	return func(c *Client) {
		c.client = cli
	}
}

func NewClient(logger log.Logger, config Config, opts ...ClientOption) (*Client, error) {
	opDuration, err := otel.Meter("github.com/goto/metasearch/internal/store/elasticsearch").
		Int64Histogram("metasearch.es.operation.duration", metric.WithUnit("ms"))
	if err != nil {
		otel.Handle(err)
	}

	c := &Client{
		logger:     logger,
		index:      config.Index,
		opDuration: opDuration,
	}
	if c.index == "" {
		c.index = defaultIndex
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client != nil {
		return c, nil
	}

	brokers := strings.Split(config.Brokers, ",")
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: brokers,
		Transport: nrelasticsearch.NewRoundTripper(nil),
	})
	if err != nil {
		return nil, err
	}
	c.client = esClient

	return c, nil
}

// Init checks the connection and returns a description of the cluster.
func (c *Client) Init() (string, error) {
	res, err := c.client.Info()
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.IsError() {
		return "", errors.New(res.Status())
	}
	var info = struct {
		ClusterName string `json:"cluster_name"`
		Version     struct {
			Number string `json:"number"`
		} `json:"version"`
	}{}

	err = json.NewDecoder(res.Body).Decode(&info)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%q (server version %s)", info.ClusterName, info.Version.Number), nil
}

// Migrate creates the person index, or updates its mapping when it exists.
func (c *Client) Migrate(ctx context.Context) error {
	idxExists, err := c.indexExists(ctx, c.index)
	if err != nil {
		return fmt.Errorf("error checking index existence: %w", err)
	}

	if idxExists {
		c.logger.Info("index already exist, updating it instead", "index", c.index)
		if err = c.updateIdx(ctx); err != nil {
			return fmt.Errorf("error updating index: %w", err)
		}
		return nil
	}

	if err = c.createIdx(ctx); err != nil {
		return fmt.Errorf("error creating index: %w", err)
	}
	return nil
}

func (c *Client) createIdx(ctx context.Context) error {
	res, err := c.client.Indices.Create(
		c.index,
		c.client.Indices.Create.WithBody(strings.NewReader(buildIndexSettings())),
		c.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error creating index %q: %s", c.index, errorReasonFromResponse(res))
	}
	return nil
}

func (c *Client) updateIdx(ctx context.Context) error {
	res, err := c.client.Indices.PutMapping(
		strings.NewReader(personIndexMapping),
		c.client.Indices.PutMapping.WithIndex(c.index),
		c.client.Indices.PutMapping.WithContext(ctx),
	)
	if err != nil {
		return elasticSearchError(err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error updating index %q: %s", c.index, errorReasonFromResponse(res))
	}
	return nil
}

// checks for the existence of an index
func (c *Client) indexExists(ctx context.Context, name string) (bool, error) {
	res, err := c.client.Indices.Exists(
		[]string{name},
		c.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("indexExists: %w", elasticSearchError(err))
	}
	defer res.Body.Close()
	return res.StatusCode == 200, nil
}

func (c *Client) instrumentOp(ctx context.Context, op string, start time.Time, err error) {
	if c.opDuration == nil {
		return
	}
	c.opDuration.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(
		attribute.String("es.operation", op),
		attribute.String("es.index", c.index),
		attribute.Bool("es.success", err == nil),
	))
}
