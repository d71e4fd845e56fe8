package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/internal/server"
	esStore "github.com/goto/metasearch/internal/store/elasticsearch"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/metasearch/pkg/statsd"
	"github.com/goto/metasearch/pkg/telemetry"
	"github.com/goto/salt/cmdx"
	"github.com/goto/salt/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const configFlag = "config"

func configCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <command>",
		Short: "Manage server configurations",
		Example: heredoc.Doc(`
			$ metasearch config init
			$ metasearch config list`),
	}

	cmd.AddCommand(configInitCommand())
	cmd.AddCommand(configListCommand(cfg))

	return cmd
}

func configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new server configuration",
		Example: heredoc.Doc(`
			$ metasearch config init
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cmdx.SetConfig("metasearch")

			if err := cfg.Init(&Config{}); err != nil {
				return err
			}

			fmt.Printf("config created: %v\n", cfg.File())
			return nil
		},
	}
}

func configListCommand(cfg *Config) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "list",
		Short: "List server configuration settings",
		Example: heredoc.Doc(`
			$ metasearch config list
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return yaml.NewEncoder(os.Stdout).Encode(cfg.redacted())
		},
	}
	return cmd
}

type Config struct {
	// Log
	LogLevel string `yaml:"log_level" mapstructure:"log_level" default:"info"`

	// StatsD
	StatsD statsd.Config `yaml:"statsd" mapstructure:"statsd"`

	// Telemetry
	Telemetry telemetry.Config `yaml:"telemetry" mapstructure:"telemetry"`

	// Elasticsearch
	Elasticsearch esStore.Config `yaml:"elasticsearch" mapstructure:"elasticsearch"`

	// Database
	DB postgres.Config `yaml:"db" mapstructure:"db"`

	// Service
	Service server.Config `yaml:"service" mapstructure:"service"`
}

func (cfg Config) redacted() Config {
	if cfg.DB.Password != "" {
		cfg.DB.Password = "********"
	}
	if cfg.Telemetry.NewRelic.LicenseKey != "" {
		cfg.Telemetry.NewRelic.LicenseKey = "********"
	}
	return cfg
}

func LoadConfig() (*Config, error) {
	var cfg Config
	err := cmdx.SetConfig("metasearch").Load(&cfg)
	if err != nil {
		if errors.As(err, &config.ConfigFileNotFoundError{}) {
			return LoadFromCurrentDir()
		}
		return &cfg, err
	}
	return &cfg, nil
}

func LoadFromCurrentDir() (*Config, error) {
	var cfg Config
	var opts []config.LoaderOption

	opts = append(opts,
		config.WithPath("./"),
		config.WithName("metasearch.yaml"),
		config.WithEnvKeyReplacer(".", "_"),
		config.WithEnvPrefix("METASEARCH"),
	)

	if err := config.NewLoader(opts...).Load(&cfg); err != nil {
		if errors.As(err, &config.ConfigFileNotFoundError{}) {
			return &cfg, ErrConfigNotFound
		}
		return &cfg, err
	}
	return &cfg, nil
}

func LoadConfigFromFlag(cfgFile string, cfg *Config) error {
	var opts []config.LoaderOption
	opts = append(opts,
		config.WithFile(cfgFile),
		config.WithEnvKeyReplacer(".", "_"),
		config.WithEnvPrefix("METASEARCH"),
	)

	return config.NewLoader(opts...).Load(cfg)
}

// reloadFromFlag replaces cfg with the file given by --config, if any.
func reloadFromFlag(cmd *cobra.Command, cfg *Config) error {
	cfgFile, err := cmd.Flags().GetString(configFlag)
	if err != nil || cfgFile == "" {
		return nil
	}
	var loaded Config
	if err := LoadConfigFromFlag(cfgFile, &loaded); err != nil {
		return fmt.Errorf("load config %q: %w", cfgFile, err)
	}
	*cfg = loaded
	return nil
}
