package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "debatebot",
		Short: "Stateful debate chatbot",
		Long: `debatebot argues with you. Each conversation is assigned a persona
(conspiracy theorist, skeptical scientist or populist) that holds its
position for the whole debate.

Running debatebot without a subcommand starts the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath(cmd))
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (default $DEBATEBOT_CONFIG or ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newChatCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)
	return root
}

// configPath resolves the config file: --config, then DEBATEBOT_CONFIG,
// then ./config.yaml. A missing file is not an error; defaults apply.
func configPath(cmd *cobra.Command) string {
	if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	if p := os.Getenv("DEBATEBOT_CONFIG"); p != "" {
		return p
	}
	return "config.yaml"
}
