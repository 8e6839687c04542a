package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/minichat/internal/cli"
	"codeberg.org/snonux/minichat/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		proc := processor.NewProcessor(flags)

		switch {
		case flags.ListModels:
			return proc.ListModels()
		case flags.BatchFile != "":
			return proc.ProcessBatch()
		case flags.Ask != "":
			return proc.Ask(flags.Ask)
		}

		// No question given - launch GUI mode by default
		return proc.RunGUIMode()
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
