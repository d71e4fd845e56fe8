package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/metasearch/core/settings"
	metasearchserver "github.com/goto/metasearch/internal/server"
	esStore "github.com/goto/metasearch/internal/store/elasticsearch"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/metasearch/pkg/statsd"
	"github.com/goto/metasearch/pkg/telemetry"
	"github.com/goto/salt/log"
	"github.com/spf13/cobra"
)

// Version of the current build. overridden by the build system.
// see "Makefile" for more information
var (
	Version string
)

const esMigrationTimeout = 5 * time.Second

func serverCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "server <command>",
		Aliases: []string{"s"},
		Short:   "Run metasearch server",
		Long:    "Server management commands.",
		Example: heredoc.Doc(`
			$ metasearch server start
			$ metasearch server start -c ./config.yaml
			$ metasearch server migrate
			$ metasearch server migrate -c ./config.yaml
		`),
	}

	cmd.AddCommand(
		serverStartCommand(cfg),
		serverMigrateCommand(cfg),
	)

	return cmd
}

func serverStartCommand(cfg *Config) *cobra.Command {
	c := &cobra.Command{
		Use:     "start",
		Short:   "Start server on default port 8080",
		Example: "metasearch server start",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			if err := runServer(cmd.Context(), cfg); err != nil {
				return fmt.Errorf("run server: %w", err)
			}
			return nil
		},
	}

	return c
}

func serverMigrateCommand(cfg *Config) *cobra.Command {
	var down bool
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Run storage migration",
		Example: heredoc.Doc(`
			$ metasearch server migrate
			$ metasearch server migrate --down
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			if down {
				return runMigrationsDown(cfg)
			}
			return runMigrations(cmd.Context(), cfg)
		},
	}

	c.Flags().BoolVar(&down, "down", false, "Roll back the postgres schema by one version")
	return c
}

func runServer(ctx context.Context, config *Config) error {
	logger := initLogger(config.LogLevel)
	logger.Info("metasearch starting", "version", Version)

	config.Telemetry.AppVersion = Version
	nrApp, cleanUpTelemetry, err := telemetry.Init(ctx, config.Telemetry, logger)
	if err != nil {
		return err
	}
	defer cleanUpTelemetry()

	statsdReporter, err := statsd.Init(logger, config.StatsD)
	if err != nil {
		return err
	}
	defer func() {
		if err := statsdReporter.Close(); err != nil {
			logger.Error("close statsd reporter", "err", err)
		}
	}()

	pgClient, err := initPostgres(logger, config)
	if err != nil {
		return err
	}

	settingsService, searchService, err := initServices(logger, config, pgClient, statsdReporter)
	if err != nil {
		return err
	}

	upgradeSettings(ctx, logger, settingsService)

	return metasearchserver.Serve(
		ctx,
		config.Service,
		logger,
		pgClient,
		nrApp,
		statsdReporter,
		searchService,
	)
}

// initServices wires the settings and search services on top of the stores
// selected by config.
func initServices(
	logger log.Logger,
	config *Config,
	pgClient *postgres.Client,
	statsdReporter *statsd.Reporter,
) (*settings.Service, *search.Service, error) {
	preferenceRepository, err := postgres.NewPreferenceRepository(pgClient)
	if err != nil {
		return nil, nil, fmt.Errorf("create new preference repository: %w", err)
	}
	settingsService := settings.NewService(logger, preferenceRepository)

	collectionRepository, err := postgres.NewCollectionRepository(pgClient)
	if err != nil {
		return nil, nil, fmt.Errorf("create new collection repository: %w", err)
	}

	candidateStore, err := initCandidateStore(logger, config, pgClient)
	if err != nil {
		return nil, nil, err
	}

	policy, err := search.ParseSurnamePolicy(config.Service.SurnameMatch)
	if err != nil {
		return nil, nil, err
	}

	searchService := search.NewService(logger, search.ServiceDeps{
		Settings: settingsService,
		Registry: collection.NewRegistry(collectionRepository),
		Engine:   search.NewEngine(candidateStore, policy),
	},
		search.ServiceWithStatsDReporter(statsdReporter),
		search.ServiceWithCollectionTimeout(config.Service.CollectionTimeout),
	)

	return settingsService, searchService, nil
}

func initCandidateStore(logger log.Logger, config *Config, pgClient *postgres.Client) (search.CandidateStore, error) {
	if !config.Elasticsearch.Enabled {
		personRepository, err := postgres.NewPersonRepository(pgClient)
		if err != nil {
			return nil, fmt.Errorf("create new person repository: %w", err)
		}
		return personRepository, nil
	}

	esClient, err := initElasticsearch(logger, config.Elasticsearch)
	if err != nil {
		return nil, err
	}
	return esStore.NewPersonRepository(esClient), nil
}

func upgradeSettings(ctx context.Context, logger log.Logger, settingsService *settings.Service) {
	if Version == "" {
		return
	}
	upgraded, err := settingsService.Upgrade(ctx, Version)
	if err != nil {
		logger.Warn("upgrade stored settings", "err", err)
		return
	}
	if upgraded {
		logger.Info("stored settings upgraded", "version", Version)
	}
}

func initLogger(logLevel string) *log.Logrus {
	logger := log.NewLogrus(
		log.LogrusWithLevel(logLevel),
		log.LogrusWithWriter(os.Stdout),
	)
	return logger
}

func initElasticsearch(logger log.Logger, config esStore.Config) (*esStore.Client, error) {
	esClient, err := esStore.NewClient(logger, config)
	if err != nil {
		return nil, fmt.Errorf("create new elasticsearch client: %w", err)
	}
	got, err := esClient.Init()
	if err != nil {
		return nil, fmt.Errorf("establish connection to elasticsearch: %w", err)
	}
	logger.Info("connected to elasticsearch", "info", got)
	return esClient, nil
}

func initPostgres(logger log.Logger, config *Config) (*postgres.Client, error) {
	pgClient, err := postgres.NewClient(config.DB)
	if err != nil {
		return nil, fmt.Errorf("error creating postgres client: %w", err)
	}
	logger.Info("connected to postgres server", "host", config.DB.Host, "port", config.DB.Port)

	return pgClient, nil
}

func runMigrations(ctx context.Context, config *Config) error {
	fmt.Println("Preparing migration...")

	logger := initLogger(config.LogLevel)
	logger.Info("metasearch is migrating", "version", Version)

	logger.Info("Migrating Postgres...")
	if err := migratePostgres(logger, config); err != nil {
		return err
	}
	logger.Info("Migration Postgres done.")

	if !config.Elasticsearch.Enabled {
		return nil
	}

	logger.Info("Migrating ES...")
	if err := migrateElasticsearch(ctx, logger, config); err != nil {
		return err
	}
	logger.Info("Migration ES done.")
	return nil
}

func migratePostgres(logger log.Logger, config *Config) (err error) {
	logger.Info("Initiating Postgres client...")

	pgClient, err := postgres.NewClient(config.DB)
	if err != nil {
		logger.Error("failed to prepare migration", "error", err)
		return err
	}
	defer pgClient.Close()

	version, err := pgClient.Migrate()
	if err != nil {
		return fmt.Errorf("problem with migration %w", err)
	}
	logger.Info("postgres schema migrated", "version", version)

	return nil
}

func migrateElasticsearch(ctx context.Context, logger log.Logger, config *Config) error {
	logger.Info("Initiating ES client...")
	esClient, err := initElasticsearch(logger, config.Elasticsearch)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, esMigrationTimeout)
	defer cancel()
	if err := esClient.Migrate(ctx); err != nil {
		return fmt.Errorf("error creating/replacing person index: %w", err)
	}
	return nil
}

func runMigrationsDown(config *Config) error {
	logger := initLogger(config.LogLevel)

	pgClient, err := postgres.NewClient(config.DB)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	version, err := pgClient.MigrateDown()
	if err != nil {
		return fmt.Errorf("problem with migration %w", err)
	}
	logger.Info("postgres schema rolled back", "version", version)
	return nil
}
