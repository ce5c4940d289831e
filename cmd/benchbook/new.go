package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/benchbook"
	"github.com/spf13/cobra"
)

var (
	newDate     string
	newTemplate string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new experiment note with the next free identifier",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := openService()

		date := newDate
		if date == "" {
			date = benchbook.DateCode(time.Now())
		}

		template := newTemplate
		if template == "" {
			template = cfg.Template
		}

		ref, err := svc.NewExperiment(context.Background(), cfg.ExperimentsDir, template, date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating experiment note: %v\n", err)
			os.Exit(1)
		}

		// The embed token is what daily entries paste to link the experiment.
		fmt.Println(ref.Embed())
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newDate, "date", "", "Day code (e.g. 250614); defaults to today")
	newCmd.Flags().StringVar(&newTemplate, "template", "", "Template name; defaults to the configured one")
}
