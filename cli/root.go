package cli

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/goto/salt/cmdx"
	"github.com/spf13/cobra"
)

func New(cliConfig *Config) *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:           "metasearch <command> <subcommand> [flags]",
		Short:         "Genealogy metasearch endpoint",
		Long:          "Federated surname search across genealogy trees for the Metasuche aggregator.",
		SilenceErrors: true,
		SilenceUsage:  false,
		Example: heredoc.Doc(`
		$ metasearch server start
		$ metasearch search --lastname Kennedy
		$ metasearch settings show
		$ metasearch index
		`),
		Annotations: map[string]string{
			"group": "core",
			"help:learn": heredoc.Doc(`
				Use 'metasearch <command> --help' for info about a command.
			`),
			"help:feedback": heredoc.Doc(`
				Open an issue here https://github.com/goto/metasearch/issues
			`),
		},
	}

	rootCmd.AddCommand(
		serverCmd(cliConfig),
		configCommand(cliConfig),
		searchCommand(cliConfig),
		settingsCommand(cliConfig),
		importCommand(cliConfig),
		indexCommand(cliConfig),
		versionCmd(),
	)

	// Help topics
	rootCmd.AddCommand(cmdx.SetCompletionCmd("metasearch"))
	rootCmd.AddCommand(cmdx.SetRefCmd(rootCmd))
	rootCmd.AddCommand(cmdx.SetHelpTopicCmd("environment", envHelp))
	cmdx.SetHelp(rootCmd)

	rootCmd.PersistentFlags().StringP(configFlag, "c", "", "Override config file")

	return rootCmd
}
