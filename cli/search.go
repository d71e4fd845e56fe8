package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/goto/metasearch/core/search"
	"github.com/goto/salt/printer"
	"github.com/goto/salt/term"
	"github.com/spf13/cobra"
)

func searchCommand(cfg *Config) *cobra.Command {
	var raw search.RawParams
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run a search against the configured stores",
		Long: heredoc.Doc(`
			Run the same search the endpoint answers, without starting the
			server. The response is printed as JSON.
		`),
		Annotations: map[string]string{
			"group": "core",
		},
		Args: cobra.NoArgs,
		Example: heredoc.Doc(`
			$ metasearch search --key s3cret --lastname Kennedy
			$ metasearch search --trees kennedy,royals --placename Boston --since 2020-01-01
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reloadFromFlag(cmd, cfg); err != nil {
				return err
			}
			spinner := printer.Spin("")
			defer spinner.Stop()

			logger := initLogger("error")
			pgClient, err := initPostgres(logger, cfg)
			if err != nil {
				return err
			}
			defer pgClient.Close()

			_, searchService, err := initServices(logger, cfg, pgClient, nil)
			if err != nil {
				return err
			}

			res, err := searchService.Search(cmd.Context(), raw)
			if err != nil {
				return err
			}

			spinner.Stop()
			fmt.Println(term.Bluef("%s", prettyPrint(res)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&raw.Key, "key", "k", "", "Shared secret of the endpoint")
	cmd.Flags().StringVarP(&raw.Trees, "trees", "t", "", "Comma separated trees to search")
	cmd.Flags().StringVarP(&raw.LastName, "lastname", "l", "", "Surname to search for")
	cmd.Flags().StringVarP(&raw.PlaceName, "placename", "p", "", "Place name fragment")
	cmd.Flags().StringVar(&raw.PlaceID, "placeid", "", "Place identifier")
	cmd.Flags().StringVarP(&raw.Since, "since", "s", "", "Only persons changed on or after YYYY-MM-DD")
	return cmd
}
