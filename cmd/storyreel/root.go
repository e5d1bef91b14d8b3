package main

import (
	"github.com/spf13/cobra"
	"storyreel-client/internal/config"
)

func newRootCommand() *cobra.Command {
	var verboseFlag bool

	ctx := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "storyreel",
		Short:         "Storyreel client CLI",
		Long:          "Client for the Storyreel AI video generation backend: build storyboards, drive per-scene generation and follow job progress live.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.SetVerbose(verboseFlag)
			return ctx.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newInitCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newWatchCommand(ctx))
	rootCmd.AddCommand(newSceneCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newComposeCommand(ctx))
	rootCmd.AddCommand(newProjectsCommand(ctx))

	return rootCmd
}
