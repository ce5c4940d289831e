package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch [pattern]",
	Short: "Print note change events until interrupted",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, _ := openService()

		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		events, err := svc.Watch(ctx, pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting watcher: %v\n", err)
			os.Exit(1)
		}

		for e := range events {
			fmt.Println(e.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
