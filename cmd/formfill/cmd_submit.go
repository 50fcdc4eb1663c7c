package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/submission"
)

func newSubmitCommand(a *app) *cobra.Command {
	var (
		source string
		seed   uint64
		dryRun bool
		count  int
		yes    bool
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Generate responses and submit them",
		Long: `Generates a randomized, type-correct response for every question and posts
it to the form's formResponse endpoint. Every question must have an
identifier; otherwise nothing is submitted and the missing titles are listed.
With --dry-run the payload and a pre-fill link are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			src, err := a.source(source)
			if err != nil {
				return err
			}

			var seedPtr *uint64
			if cmd.Flags().Changed("seed") {
				seedPtr = &seed
			}
			orch, entries, err := a.pipeline(cmd.Context(), src, orchestrator.WithGenerator(a.generator(seedPtr)))
			if err != nil {
				return err
			}
			defer entries.Close()

			if count > 1 && !dryRun && !yes {
				ok, err := a.driver.Confirm(cmd.Context(), prompt.ConfirmConfig{
					Message: fmt.Sprintf("Submit %d responses?", count),
				})
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			}

			w := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				res, err := orch.Submit(cmd.Context(), orchestrator.SubmitRequest{
					Request: orchestrator.Request{Source: src},
					DryRun:  dryRun,
				})
				if err != nil {
					return err
				}
				if dryRun {
					fmt.Fprintln(w, submission.Encode(res.Payload))
					if link := a.prefillLink(res); link != "" {
						fmt.Fprintln(w, link)
					}
					continue
				}
				a.logger.Info("submitted", zap.Int("response", i+1), zap.Int("of", count))
				fmt.Fprintf(w, "Response %d/%d submitted (%d fields)\n", i+1, count, len(res.Payload))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "form description file, URL or api:<form id>")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the generator for reproducible answers")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload without submitting")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of responses to submit")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation for multiple responses")
	return cmd
}

func (a *app) prefillLink(res orchestrator.SubmitResult) string {
	view := strings.TrimSpace(a.cfg.Form.ViewURL)
	if view == "" {
		view = res.ResponderURI
	}
	if view == "" {
		return ""
	}
	link, err := submission.PrefillURL(view, res.Payload)
	if err != nil {
		a.logger.Debug("pre-fill link unavailable", zap.Error(err))
		return ""
	}
	return link
}
