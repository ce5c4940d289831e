package main

import (
	"fmt"

	"github.com/aretw0/benchbook"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of benchbook",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("benchbook version %s\n", benchbook.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
