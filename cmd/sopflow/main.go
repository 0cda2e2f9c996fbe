// Command sopflow edits workflow graphs in the terminal and exports them
// as raster flowcharts.
package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sopflow/config"
)

var (
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed)
)

var (
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sopflow",
	Short: "Workflow graph editor",
	Long:  "Edit process workflows as directed graphs, preview them, and export raster flowcharts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		var err error
		cfg, err = config.Load()
		return err
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "sopflow: %v\n", err)
		os.Exit(1)
	}
}
