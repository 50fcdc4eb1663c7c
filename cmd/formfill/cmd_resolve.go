package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/reconcile"
)

func newResolveCommand(a *app) *cobra.Command {
	var (
		source string
		sets   []string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Assign identifiers to unresolved questions",
		Long: `Reconciles the entry map and then assigns identifiers, either from
--set "Title=entry.123" pairs or interactively for every question still
holding the <TO ADD> placeholder.`,
		Example: `  formfill resolve --set "Age=entry.301" --set "Color=entry.100"
  formfill resolve`,
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

			var (
				m        model.EntryMap
				assigned []string
			)
			if len(sets) > 0 {
				m, assigned, err = applySets(res.Reconcile.Map, sets)
			} else {
				resolver := prompt.NewResolver(prompt.WithPromptDriver(a.driver))
				m, assigned, err = resolver.Resolve(cmd.Context(), res.Questions, res.Reconcile.Map)
			}
			if err != nil {
				return err
			}
			if len(assigned) > 0 {
				if err := entries.Save(cmd.Context(), m); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			for _, title := range assigned {
				fmt.Fprintf(w, "%s = %s\n", title, m.Entries[title].ID)
			}
			printList(w, "Still unresolved", m.Unresolved())
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "form description file, URL or api:<form id>")
	cmd.Flags().StringArrayVar(&sets, "set", nil, `assignment in the form "Title=entry.N" (repeatable)`)
	return cmd
}

// applySets applies "Title=id" pairs. The title is everything before the
// last "=" so titles may contain the separator.
func applySets(m model.EntryMap, sets []string) (model.EntryMap, []string, error) {
	var assigned []string
	for _, set := range sets {
		idx := strings.LastIndex(set, "=")
		if idx <= 0 {
			return m, nil, fmt.Errorf("invalid assignment %q: want Title=entry.N", set)
		}
		title := strings.TrimSpace(set[:idx])
		next, err := reconcile.Assign(m, title, set[idx+1:])
		if err != nil {
			return m, nil, err
		}
		m = next
		assigned = append(assigned, title)
	}
	return m, assigned, nil
}
