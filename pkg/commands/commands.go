package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "atelier",
		Short: "Block-based notes and workspaces on the command line.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addPages(topLevel)
	addFeed(topLevel)
	addInvites(topLevel)
	addMembers(topLevel)
	addAsk(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addVersion(topLevel)
}

func setupLogging() {
	level := zerolog.WarnLevel
	if os.Getenv("ATELIER_DEBUG") != "" {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
