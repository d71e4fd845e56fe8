package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/core/collection"
	"github.com/goto/metasearch/core/settings"
	"github.com/goto/metasearch/internal/store/postgres"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/r3labs/diff/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func settingsCommand(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings <command>",
		Short: "Show or change the stored module preferences",
		Example: heredoc.Doc(`
			$ metasearch settings show
			$ metasearch settings update --max-hit 50 --use-hash
		`),
		Annotations: map[string]string{
			"group": "core",
		},
	}

	cmd.AddCommand(settingsShowCommand(cfg))
	cmd.AddCommand(settingsUpdateCommand(cfg))
	return cmd
}

type settingsView struct {
	Settings settings.Settings `yaml:"settings"`
	Trees    []string          `yaml:"trees"`
}

func settingsShowCommand(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the preferences and the known trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := initLogger("error")
			pgClient, err := initPostgres(logger, cfg)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			preferenceRepository, err := postgres.NewPreferenceRepository(pgClient)
			if err != nil {
				return err
			}
			collectionRepository, err := postgres.NewCollectionRepository(pgClient)
			if err != nil {
				return err
			}

			current, err := settings.NewService(logger, preferenceRepository).Get(ctx)
			if err != nil {
				return err
			}
			trees, err := collectionRepository.GetAll(ctx)
			if err != nil {
				return err
			}

			return yaml.NewEncoder(os.Stdout).Encode(newSettingsView(current, trees))
		},
	}
}

func newSettingsView(current settings.Settings, trees []collection.Collection) settingsView {
	view := settingsView{Settings: current.Masked(), Trees: []string{}}
	for _, t := range trees {
		view.Trees = append(view.Trees, t.Label())
	}
	return view
}

type settingsFlags struct {
	secret        string
	useHash       bool
	maxHit        int
	defaultTrees  string
	treeOrder     string
	disabledTrees string
	databaseName  string
	databaseURL   string
}

func settingsUpdateCommand(cfg *Config) *cobra.Command {
	var flags settingsFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change preferences, unset flags keep their stored value",
		Example: heredoc.Doc(`
			$ metasearch settings update --secret-key s3cretkey --use-hash
			$ metasearch settings update --default-trees kennedy,royals --max-hit 50
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			ctx := cmd.Context()
			logger := initLogger(cfg.LogLevel)
			pgClient, err := initPostgres(logger, cfg)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			preferenceRepository, err := postgres.NewPreferenceRepository(pgClient)
			if err != nil {
				return err
			}
			settingsService := settings.NewService(logger, preferenceRepository)

			current, err := settingsService.Get(ctx)
			if err != nil {
				return err
			}

			changelog, err := settingsService.Update(ctx, buildUpdateRequest(current, flags, cmd.Flags().Changed))
			printChangelog(changelog)

			var invalid settings.InvalidError
			if errors.As(err, &invalid) {
				fmt.Println(term.Redf("%s", invalid.Error()))
			}
			return err
		},
	}

	cmd.Flags().StringVar(&flags.secret, "secret-key", "", "New shared secret, at least 8 characters")
	cmd.Flags().BoolVar(&flags.useHash, "use-hash", false, "Store the shared secret as a bcrypt hash")
	cmd.Flags().IntVar(&flags.maxHit, "max-hit", settings.DefaultMaxHit, "Maximum hits per tree")
	cmd.Flags().StringVar(&flags.defaultTrees, "default-trees", "", "Comma separated trees searched when none are requested")
	cmd.Flags().StringVar(&flags.treeOrder, "tree-order", "", "Comma separated display order of trees")
	cmd.Flags().StringVar(&flags.disabledTrees, "disabled-trees", "", "Comma separated trees excluded from search")
	cmd.Flags().StringVar(&flags.databaseName, "database-name", "", "Name of the dataset reported to the aggregator")
	cmd.Flags().StringVar(&flags.databaseURL, "database-url", "", "Public base url of the dataset")
	return cmd
}

// buildUpdateRequest starts from the stored settings and overrides every
// flag the caller set.
func buildUpdateRequest(current settings.Settings, flags settingsFlags, changed func(name string) bool) settings.UpdateRequest {
	req := settings.UpdateRequest{
		UseHash:       current.UseHash,
		MaxHit:        current.MaxHit,
		DefaultTrees:  current.DefaultTrees,
		TreeOrder:     current.TreeOrder,
		DisabledTrees: current.DisabledTrees,
		DatabaseName:  current.DatabaseName,
		DatabaseURL:   current.DatabaseURL,
	}

	if changed("secret-key") {
		req.NewSecret = flags.secret
	}
	if changed("use-hash") {
		req.UseHash = flags.useHash
	}
	if changed("max-hit") {
		req.MaxHit = flags.maxHit
	}
	if changed("default-trees") {
		req.DefaultTrees = collection.SplitNames(flags.defaultTrees)
	}
	if changed("tree-order") {
		req.TreeOrder = collection.SplitNames(flags.treeOrder)
	}
	if changed("disabled-trees") {
		req.DisabledTrees = collection.SplitNames(flags.disabledTrees)
	}
	if changed("database-name") {
		req.DatabaseName = flags.databaseName
	}
	if changed("database-url") {
		req.DatabaseURL = flags.databaseURL
	}
	return req
}

func printChangelog(changelog diff.Changelog) {
	if len(changelog) == 0 {
		fmt.Println(term.Yellow("no preference changed"))
		return
	}
	report := [][]string{{"FIELD", "FROM", "TO"}}
	for _, c := range changelog {
		report = append(report, []string{
			term.Bluef("%s", strings.Join(c.Path, ".")),
			fmt.Sprintf("%v", c.From),
			fmt.Sprintf("%v", c.To),
		})
	}
	printer.Table(os.Stdout, report)
}
