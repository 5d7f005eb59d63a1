package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/gemdict/internal/batch"
	"codeberg.org/snonux/gemdict/internal/cli"
	"codeberg.org/snonux/gemdict/internal/dictionary"
	"codeberg.org/snonux/gemdict/internal/logger"
	"codeberg.org/snonux/gemdict/internal/models"
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
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	if len(args) == 0 && flags.BatchFile == "" && !flags.ListModels {
		return cmd.Help()
	}

	settings, err := cli.LoadSettings()
	if err != nil {
		return err
	}

	log := logger.Setup(settings.LogLevel, settings.LogFormat, os.Stderr)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(settings.APIKey, settings.BaseURL, out)
		return lister.ListAvailableModels(ctx)
	}

	dict := dictionary.NewGemini(dictionary.Config{
		APIKey:  settings.APIKey,
		Model:   settings.Model,
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
		Logger:  log,
	})

	// Handle batch processing
	if flags.BatchFile != "" {
		words, err := batch.ReadWordList(flags.BatchFile)
		if err != nil {
			return err
		}
		if len(words) == 0 {
			return fmt.Errorf("no words found in %s", flags.BatchFile)
		}

		runner := batch.NewRunner(dict, settings.MaxFailures, log)
		results, summary := runner.Run(ctx, words)
		if err := cli.PrintBatch(out, results, summary, settings.Format); err != nil {
			return err
		}
		if summary.Defined != summary.Total {
			return fmt.Errorf("%d of %d words could not be defined", summary.Total-summary.Defined, summary.Total)
		}
		return nil
	}

	// Process single word
	def, err := dict.Define(ctx, args[0])
	if err != nil {
		return err
	}
	return cli.PrintDefinition(out, def, settings.Format)
}
