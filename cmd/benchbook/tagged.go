package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	taggedFolder  string
	taggedExclude []string
)

var taggedCmd = &cobra.Command{
	Use:   "tagged [tag]",
	Short: "List notes bearing a tag, sorted by name",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := openService()

		tag := cfg.OngoingTag
		if len(args) > 0 {
			tag = args[0]
		}

		folder := taggedFolder
		if folder == "" {
			folder = cfg.DailyDir
		}

		exclude := taggedExclude
		if len(exclude) == 0 {
			exclude = cfg.Exclude
		}

		names, err := svc.FindTagged(context.Background(), folder, tag, exclude)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error scanning for tag: %v\n", err)
			os.Exit(1)
		}

		for _, name := range names {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(taggedCmd)
	taggedCmd.Flags().StringVar(&taggedFolder, "folder", "", "Folder to scan; defaults to the daily folder")
	taggedCmd.Flags().StringSliceVar(&taggedExclude, "exclude", nil, "Basename substrings to skip")
}
