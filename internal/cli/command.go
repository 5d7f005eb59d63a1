package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/gemdict/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gemdict [word]",
		Short: "Gemini-powered dictionary",
		Long: `gemdict asks Google Gemini to act as a dictionary and prints the
word's pronunciation, definition, two example sentences and an image
reference.

Examples:
  gemdict serendipity                 # Define one word
  gemdict --format json ephemeral     # Print the definition as JSON
  gemdict --batch words.txt           # Define every word in a file
  gemdict --list-models               # Show models usable with --model`,
		Args:         cobra.MaximumNArgs(1),
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.gemdict.yaml)")

	// Local flags
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Define words from file (one per line, # for comments)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List Gemini models available for the current API key")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format: text or json")
	cmd.Flags().IntVar(&flags.MaxFailures, "max-failures", flags.MaxFailures, "Stop a batch after this many consecutive request failures")

	// Gemini flags
	cmd.Flags().StringVarP(&flags.Model, "model", "m", flags.Model, "Gemini model, e.g. gemini-pro or gemini-2.5-flash")
	cmd.Flags().StringVar(&flags.BaseURL, "base-url", flags.BaseURL, "Gemini API base URL")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "Timeout per lookup, e.g. 30s (0 waits indefinitely)")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("gemini.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("gemini.base_url", cmd.Flags().Lookup("base-url"))
	viper.BindPFlag("gemini.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	viper.BindPFlag("batch.max_failures", cmd.Flags().Lookup("max-failures"))
	viper.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	viper.BindPFlag("log.format", cmd.Flags().Lookup("log-format"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".gemdict" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gemdict")
	}

	// Environment variables, e.g. GEMDICT_GEMINI_MODEL
	viper.SetEnvPrefix("GEMDICT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the Gemini API key from environment or config
func GetAPIKey() string {
	// First check environment variables
	for _, name := range []string{"GEMDICT_API_KEY", "GEMINI_API_KEY"} {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}

	// Then check config file
	return strings.TrimSpace(viper.GetString("gemini.api_key"))
}
