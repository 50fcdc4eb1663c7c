package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/goliatone/go-formfill/internal/config"
	"github.com/goliatone/go-formfill/internal/logging"
	"github.com/goliatone/go-formfill/pkg/prompt"
)

// app carries the state shared by every command. Tests replace the driver,
// the HTTP client and the API options.
type app struct {
	configPath string
	verbose    bool

	out        io.Writer
	cfg        *config.Config
	logger     *zap.Logger
	driver     prompt.PromptDriver
	httpClient *http.Client
	apiOptions []option.ClientOption
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(&app{out: os.Stdout})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "formfill:", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "formfill",
		Short: "Keep a form's entry map in sync and submit generated responses",
		Long: `formfill reads an online questionnaire, normalizes its questions and keeps
a persisted map from question titles to the entry.<n> identifiers the
submission endpoint expects. Once every identifier is known it generates
randomized, type-correct answers and submits them.

Typical flow:
  formfill sync                 # add new questions to the entry map
  formfill prefill "<link>"     # harvest identifiers from a pre-fill link
  formfill resolve              # fill in whatever is still missing
  formfill submit --dry-run     # inspect a generated payload`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newFetchCommand(a),
		newSyncCommand(a),
		newPrefillCommand(a),
		newResolveCommand(a),
		newEntriesCommand(a),
		newSubmitCommand(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(a.configPath)
	} else {
		cfg, err = config.LoadOrDefault(a.configPath)
	}
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		logger, err := logging.New(cfg.Logging, a.verbose)
		if err != nil {
			return err
		}
		a.logger = logger
	}
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver()
	}
	if a.httpClient == nil {
		a.httpClient = &http.Client{Timeout: cfg.HTTP.Timeout}
	}
	return nil
}
