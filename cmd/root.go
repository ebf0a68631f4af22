package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/kwfinder/internal/identity"
)

var (
	flagConfig      string
	flagCache       string
	flagDebug       bool
	flagLockTimeout time.Duration
	flagUpdate      string
)

var rootCmd = &cobra.Command{
	Use:          "kwfinder <search>",
	Short:        "Find stable diffusion keywords for your installed models and loras",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `kwfinder fuzzy-searches your installed models and loras by filename and
prints their trigger keywords, using the stores of the model-keyword extension
(https://github.com/mix1009/model-keyword) plus your own custom mappings.

With --update, the search argument is written as the custom mapping of the
given model or lora instead. Use | to separate keywords and wrap the value in
quotes. An empty value ('') deletes the mapping.`,
	Example: `  kwfinder anyth
  kwfinder 'tag1|tag2' --update myLora.safetensors
  kwfinder '' --update myLora.safetensors`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: config.yaml, then config.json)")
	pf.StringVar(&flagCache, "cache", identity.DefaultCacheFile, "Fingerprint cache file")
	pf.BoolVar(&flagDebug, "debug", false, "Print debug information")
	pf.DurationVar(&flagLockTimeout, "lock-timeout", 10*time.Second, "How long to wait for another kwfinder run to finish")
	rootCmd.Flags().StringVar(&flagUpdate, "update", "", "Update the custom mapping of a model or lora (complete filename with extension)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	updating := cmd.Flags().Changed("update")
	if len(args) == 0 {
		if updating {
			return fmt.Errorf("missing keyword value for --update (pass '' to delete the mapping)")
		}
		return cmd.Help()
	}
	if updating {
		return runUpdate(flagUpdate, args[0])
	}
	return runSearch(cmd, args)
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns the diagnostics logger shared by the internal packages.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
