package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/reconcile"
)

func newEntriesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Inspect or prune the persisted entry map",
	}
	cmd.AddCommand(newEntriesListCommand(a), newEntriesPruneCommand(a))
	return cmd
}

func newEntriesListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every title with its identifier and type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.openStore()
			if err != nil {
				return err
			}
			defer entries.Close()

			m, err := entries.Load(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TITLE\tIDENTIFIER\tTYPE")
			for _, title := range m.Titles() {
				entry := m.Entries[title]
				fmt.Fprintf(tw, "%s\t%s\t%s\n", title, entry.ID, entry.Type)
			}
			return tw.Flush()
		},
	}
}

func newEntriesPruneCommand(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove entries whose questions are no longer in the form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.source(source)
			if err != nil {
				return err
			}
			orch, entries, err := a.pipeline(cmd.Context(), src)
			if err != nil {
				return err
			}
			defer entries.Close()

			report, err := orch.Schema(cmd.Context(), orchestrator.Request{Source: src})
			if err != nil {
				return err
			}
			m, err := entries.Load(cmd.Context())
			if err != nil {
				return err
			}
			pruned, removed := reconcile.Prune(report.Questions, m)
			if len(removed) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to prune")
				return nil
			}
			if err := entries.Save(cmd.Context(), pruned); err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), "Removed", removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "form description file, URL or api:<form id>")
	return cmd
}
