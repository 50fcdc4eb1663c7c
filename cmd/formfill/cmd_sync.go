package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
)

func newSyncCommand(a *app) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the entry map with the current form",
		Long: `Normalizes the form description and merges its questions into the entry
map. New questions are added with the <TO ADD> placeholder; questions that
disappeared from the form are kept until "entries prune" removes them.`,
		Args: cobra.NoArgs,
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

			res, err := orch.Sync(cmd.Context(), orchestrator.Request{Source: src})
			if err != nil {
				return err
			}
			printSync(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "form description file, URL or api:<form id>")
	return cmd
}

func printSync(w io.Writer, res orchestrator.SyncResult) {
	fmt.Fprintf(w, "%s: %d questions, %d new, %d unresolved\n",
		res.Title, len(res.Questions), len(res.Reconcile.Added), len(res.Reconcile.Unresolved))
	printList(w, "Unresolved", res.Reconcile.Unresolved)
	printList(w, "No longer in the form", res.Reconcile.Stale)
	printList(w, "Skipped items", res.Skipped)
	printIssues(w, res.Report)
}

func newPrefillCommand(a *app) *cobra.Command {
	var (
		source   string
		noPrompt bool
	)
	cmd := &cobra.Command{
		Use:   "prefill LINK",
		Short: "Harvest entry identifiers from a pre-fill link",
		Long: `Reads the entry.<n> parameters of a pre-fill link and assigns them to the
unresolved questions they answer. Fill the pre-fill form with each text
question's own title so text answers can be matched. Identifiers that match
several questions are offered in a prompt unless --no-prompt is set.`,
		Args: cobra.ExactArgs(1),
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

			res, err := orch.Prefill(cmd.Context(), orchestrator.Request{Source: src}, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, q := range res.Questions {
				if id, ok := res.Prefill.Assigned[q.Title]; ok {
					fmt.Fprintf(w, "%s = %s\n", q.Title, id)
				}
			}
			if len(res.Prefill.Ambiguous) == 0 {
				return nil
			}
			if noPrompt {
				for _, amb := range res.Prefill.Ambiguous {
					fmt.Fprintf(w, "ambiguous: %s %v\n", amb.Candidate.ID, amb.Candidate.Values)
				}
				return nil
			}

			resolver := prompt.NewResolver(prompt.WithPromptDriver(a.driver))
			m, assigned, err := resolver.ResolveAmbiguous(cmd.Context(), res.Questions, res.Prefill.Map, res.Prefill.Ambiguous)
			if err != nil {
				return err
			}
			if len(assigned) == 0 {
				return nil
			}
			if err := entries.Save(cmd.Context(), m); err != nil {
				return err
			}
			printList(w, "Assigned", assigned)
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "form description file, URL or api:<form id>")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "report ambiguous identifiers instead of prompting")
	return cmd
}

func printList(w io.Writer, label string, titles []string) {
	if len(titles) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", label)
	for _, title := range titles {
		fmt.Fprintf(w, "  - %s\n", title)
	}
}

func printIssues(w io.Writer, report orchestrator.Report) {
	for _, issue := range report.Issues {
		if issue.Kind == model.IssueUnresolved {
			continue
		}
		fmt.Fprintf(w, "warning [%s] %s: %s\n", issue.Kind, issue.Title, issue.Message)
	}
}
