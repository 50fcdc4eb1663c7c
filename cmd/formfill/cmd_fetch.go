package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFetchCommand(a *app) *cobra.Command {
	var formID, out string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the form description through the Forms API",
		Long: `Fetches the form resource with the configured OAuth token and writes it as
JSON, by default to data/form_data_<form id>.json. The saved file can be used
as form.source so later runs work offline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(formID)
			if id == "" {
				id = a.cfg.Form.ID
			}
			if id == "" {
				return fmt.Errorf("form id is required: pass --form-id or set form.id")
			}
			path := out
			if path == "" {
				path = filepath.Join("data", "form_data_"+id+".json")
			}

			fetcher, err := a.fetcher(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := fetcher.Fetch(cmd.Context(), id)
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, raw, "", "    "); err != nil {
				return fmt.Errorf("format form %s: %w", id, err)
			}
			pretty.WriteByte('\n')
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}
			if err := os.WriteFile(path, pretty.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}

			a.logger.Info("form description saved", zap.String("form", id), zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "Form %s saved to %s\n", id, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&formID, "form-id", "", "form id (defaults to form.id)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	return cmd
}
