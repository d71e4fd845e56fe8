package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/salt/log"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	logLevelDebug = "debug"

	pgImage       = "postgres"
	pgImageTag    = "14"
	pgHost        = "localhost"
	pgUser        = "metasearch_test"
	pgPassword    = "metasearch_test"
	pgDatabase    = "metasearch_test"
	pgExpiry      = 120 // seconds
	pgReadyWithin = 60 * time.Second
)

// StartPostgres runs a disposable PostgreSQL container for the duration of
// the test and returns the config to reach it.
func StartPostgres(t *testing.T, logger log.Logger) (postgres.Config, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return postgres.Config{}, fmt.Errorf("start postgres: create dockertest pool: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: pgImage,
		Tag:        pgImageTag,
		Env: []string{
			"POSTGRES_USER=" + pgUser,
			"POSTGRES_PASSWORD=" + pgPassword,
			"POSTGRES_DB=" + pgDatabase,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return postgres.Config{}, fmt.Errorf("start postgres: run container: %w", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			logger.Error("could not purge postgres container", "err", err)
		}
	})

	if logger.Level() == logLevelDebug {
		if err := attachLogs(t, pool, resource, logger); err != nil {
			return postgres.Config{}, err
		}
	}

	if err := resource.Expire(pgExpiry); err != nil {
		return postgres.Config{}, err
	}

	port, err := strconv.Atoi(resource.GetPort("5432/tcp"))
	if err != nil {
		return postgres.Config{}, fmt.Errorf("start postgres: parse container port: %w", err)
	}
	cfg := postgres.Config{
		Host:     pgHost,
		Port:     port,
		Name:     pgDatabase,
		User:     pgUser,
		Password: pgPassword,
		SSLMode:  "disable",
	}

	pool.MaxWait = pgReadyWithin
	if err := pool.Retry(func() error { return ping(cfg) }); err != nil {
		return postgres.Config{}, fmt.Errorf("start postgres: not ready: %w", err)
	}
	return cfg, nil
}

func ping(cfg postgres.Config) error {
	db, err := sql.Open("pgx", cfg.ConnectionURL().String())
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Ping()
}

func attachLogs(t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource, logger log.Logger) error {
	t.Helper()

	logWaiter, err := pool.Client.AttachToContainerNonBlocking(docker.AttachToContainerOptions{
		Container:    resource.Container.ID,
		OutputStream: logger.Writer(),
		ErrorStream:  logger.Writer(),
		Stderr:       true,
		Stdout:       true,
		Stream:       true,
	})
	if err != nil {
		return fmt.Errorf("start postgres: attach container logs: %w", err)
	}
	t.Cleanup(func() {
		if err := logWaiter.Close(); err != nil {
			logger.Error("could not close container log", "err", err)
		}
		if err := logWaiter.Wait(); err != nil {
			logger.Error("could not wait for container log to close", "err", err)
		}
	})
	return nil
}

// ResetSchema drops every table and applies all migrations again.
func ResetSchema(ctx context.Context, pgClient *postgres.Client) error {
	if err := pgClient.ExecQueries(ctx, []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
	}); err != nil {
		return err
	}

	_, err := pgClient.Migrate()
	return err
}
