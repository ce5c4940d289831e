package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/benchbook"
	bb "github.com/aretw0/benchbook/pkg/benchbook"
	"github.com/spf13/cobra"
)

var (
	queryFolder     string
	queryTag        string
	queryExclude    string
	querySort       string
	queryDesc       bool
	queryFields     []string
	queryReferences string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run an aggregation query over the note collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, cfg := openService()

		tag := queryTag
		if tag == "" {
			tag = cfg.ArchivedTag
		}

		spec := benchbook.QuerySpec{
			Folder:               queryFolder,
			SourceTag:            tag,
			ExcludeNameSubstring: queryExclude,
			Descending:           queryDesc,
		}

		switch querySort {
		case "basename":
			spec.SortKey = benchbook.SortBasename
		case "created":
			spec.SortKey = benchbook.SortCreated
		case "modified":
			spec.SortKey = benchbook.SortModified
		default:
			fmt.Fprintf(os.Stderr, "Unknown sort key: %s\n", querySort)
			os.Exit(1)
		}

		fields, err := parseFields(queryFields)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		spec.Fields = fields

		if queryReferences != "" {
			spec.Predicate = benchbook.ReferencesNote(queryReferences)
		}

		rows, err := svc.Query(context.Background(), spec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running query: %v\n", err)
			os.Exit(1)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		w.Flush()
	},
}

func parseFields(names []string) ([]bb.Field, error) {
	var fields []bb.Field
	for _, name := range names {
		switch name {
		case "basename":
			fields = append(fields, benchbook.FieldBasename)
		case "link":
			fields = append(fields, benchbook.FieldLink)
		case "created":
			fields = append(fields, benchbook.FieldCreated)
		case "modified":
			fields = append(fields, benchbook.FieldModified)
		case "match":
			fields = append(fields, benchbook.FieldMatch)
		default:
			return nil, fmt.Errorf("unknown field: %s", name)
		}
	}
	return fields, nil
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVar(&queryFolder, "folder", "", "Folder scope (empty scans the whole notebook)")
	queryCmd.Flags().StringVar(&queryTag, "tag", "", "Source tag; defaults to the configured archived tag")
	queryCmd.Flags().StringVar(&queryExclude, "exclude-name", "template", "Drop rows whose basename contains this substring")
	queryCmd.Flags().StringVar(&querySort, "sort", "basename", "Sort key: basename, created, or modified")
	queryCmd.Flags().BoolVar(&queryDesc, "desc", false, "Sort descending")
	queryCmd.Flags().StringSliceVar(&queryFields, "fields", []string{"basename"}, "Projected columns: basename, link, created, modified, match")
	queryCmd.Flags().StringVar(&queryReferences, "references", "", "Only notes whose content mentions this note name")
}
