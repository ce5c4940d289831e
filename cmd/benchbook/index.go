package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/benchbook/pkg/core"
	"github.com/aretw0/benchbook/pkg/index"
	"github.com/spf13/cobra"
)

var indexDB string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Maintain the optional sqlite mirror of the notebook",
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index from scratch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withIndex(func(ctx context.Context, idx *index.Index, store core.Store, folders []string) error {
			return idx.Rebuild(ctx, store, folders...)
		})
	},
}

var indexRecheckCmd = &cobra.Command{
	Use:   "recheck",
	Short: "Reconcile the index with the current notebook state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withIndex(func(ctx context.Context, idx *index.Index, store core.Store, folders []string) error {
			return idx.Recheck(ctx, store, folders...)
		})
	},
}

func withIndex(fn func(context.Context, *index.Index, core.Store, []string) error) {
	svc, cfg := openService()

	dbPath := indexDB
	if dbPath == "" {
		dbPath = cfg.IndexPath
	}
	if dbPath == "" {
		dbPath = filepath.Join(notebookDir, ".benchbook.db")
	}

	idx, err := index.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening index: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	ctx := context.Background()
	if err := idx.Init(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing index: %v\n", err)
		os.Exit(1)
	}

	folders := []string{cfg.ExperimentsDir, cfg.DailyDir}
	if err := fn(ctx, idx, svc.Store(), folders); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating index: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexRecheckCmd)
	indexCmd.PersistentFlags().StringVar(&indexDB, "db", "", "Index database path; defaults to <dir>/.benchbook.db")
}
