package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/config"
	"github.com/roach88/gaq/internal/ir"
	"github.com/roach88/gaq/internal/language"
	"github.com/roach88/gaq/internal/session"
	"github.com/roach88/gaq/internal/store"
	"github.com/roach88/gaq/internal/tracking"
)

// FinalizeOptions holds flags for the finalize command.
type FinalizeOptions struct {
	*RootOptions
	Config   string
	Database string
	Session  string
	Env      string
}

// FinalizeResult is the JSON output of finalize.
type FinalizeResult struct {
	Session     string       `json:"session"`
	Environment string       `json:"environment"`
	Payload     []ir.Segment `json:"payload"`
	RenderGAJS  bool         `json:"render_ga_js"`
}

// NewFinalizeCommand creates the finalize command.
func NewFinalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FinalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize one request for a session",
		Long: `Finalize one request: load the session's flash, add tracker setup from
the configuration, sort and print the _gaq payload, then consume the flash.

Environment variables:
  GAQ_ENV              environment matched against config gates (default development)
  GAQ_WEB_PROPERTY_ID  overrides the default tracker's web property id
  GAQ_DB               database path when --db is not given (default gaq.db)

Example:
  gaq finalize --config gaq.cue --session 0190c0de-... --env production
  gaq finalize --db ./gaq.db --session s1 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to CUE configuration (default configuration when empty)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $GAQ_DB)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id (required)")
	cmd.Flags().StringVar(&opts.Env, "env", "", "environment (default $GAQ_ENV)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runFinalize(opts *FinalizeOptions, cmd *cobra.Command) error {
	logger := opts.logger()

	envVars, err := config.LoadEnv()
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeConfigFailed, "failed to read environment", err)
	}

	cfg := config.Default()
	if opts.Config != "" {
		if cfg, err = config.Load(opts.Config); err != nil {
			return opts.fail(cmd, ExitCommandError, ErrCodeConfigFailed, "failed to load config", err)
		}
	}
	cfg.ApplyEnv(envVars)

	env := opts.Env
	if env == "" {
		env = envVars.Environment
	}
	dbPath := opts.Database
	if dbPath == "" {
		dbPath = envVars.DB
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	reg := language.Builtin()
	adapter := session.NewAdapter(reg, st.Flash(opts.Session), logger)
	handle := tracking.New(reg, cfg, adapter, env, logger)

	ctx := commandContext(cmd)
	segs, err := handle.Finalize(ctx)
	if err != nil {
		return opts.fail(cmd, ExitFailure, ErrCodeLanguageError, "failed to finalize", err)
	}
	if err := handle.Commit(ctx); err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to commit flash", err)
	}
	logger.Info("request finalized", "session", opts.Session, "env", env, "segments", len(segs))

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(FinalizeResult{
			Session:     opts.Session,
			Environment: env,
			Payload:     segs,
			RenderGAJS:  handle.RenderEnabled(),
		})
	}

	payload, err := ir.MarshalPayload(segs)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to marshal payload", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	opts.formatter(cmd).VerboseLog("render ga.js: %t", handle.RenderEnabled())
	return nil
}
