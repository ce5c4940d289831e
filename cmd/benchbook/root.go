package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/benchbook"
	"github.com/aretw0/benchbook/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	notebookDir string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "benchbook",
	Short: "Bookkeeping automation for a markdown lab notebook",
	Long: `Benchbook automates the bookkeeping of a lab notebook folder:
it sequences experiment identifiers, instantiates notes from templates,
and answers tag and aggregation queries over the collection.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&notebookDir, "dir", "d", ".", "Notebook directory")
}

// openService loads the notebook config and opens the service over the
// configured directory. Exits the process on failure, CLI-style.
func openService() (*benchbook.Service, config.Config) {
	cfg, err := config.Load(notebookDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	svc, err := benchbook.Open(notebookDir,
		benchbook.WithMustExist(true),
		benchbook.WithTemplatesDir(cfg.TemplatesDir),
		benchbook.WithLogger(slog.Default()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening notebook: %v\n", err)
		os.Exit(1)
	}

	return svc, cfg
}
