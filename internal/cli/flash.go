package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/gaq/internal/config"
	"github.com/roach88/gaq/internal/language"
	"github.com/roach88/gaq/internal/session"
	"github.com/roach88/gaq/internal/store"
)

// FlashOptions holds flags shared by the flash subcommands.
type FlashOptions struct {
	*RootOptions
	Database string
	Session  string

	// IDGenerator allows overriding the session id generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator session.IDGenerator
}

// FlashPushOptions holds flags for flash push.
type FlashPushOptions struct {
	*FlashOptions
	Tracker string
	Early   bool
}

// FlashContents is the JSON output of flash show and flash push.
type FlashContents struct {
	Session string        `json:"session"`
	Early   []CommandView `json:"early"`
	Normal  []CommandView `json:"normal"`
}

// NewFlashCommand creates the flash command and its subcommands.
func NewFlashCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FlashOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "flash",
		Short: "Manage commands queued for a session's next request",
		Long: `Manage the flash: the commands a session carries into its next request.

Example:
  gaq flash push track_event signup complete --db ./gaq.db
  gaq flash show --session 0190c0de-...
  gaq flash list
  gaq flash clear --session 0190c0de-...`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default $GAQ_DB)")
	cmd.PersistentFlags().StringVar(&opts.Session, "session", "", "session id")

	cmd.AddCommand(newFlashPushCommand(opts))
	cmd.AddCommand(newFlashShowCommand(opts))
	cmd.AddCommand(newFlashListCommand(opts))
	cmd.AddCommand(newFlashClearCommand(opts))

	return cmd
}

func newFlashPushCommand(flashOpts *FlashOptions) *cobra.Command {
	opts := &FlashPushOptions{FlashOptions: flashOpts}

	cmd := &cobra.Command{
		Use:   "push <command> [args...]",
		Short: "Queue a command for the session's next request",
		Long: `Queue one vocabulary command for the session's next request.

Arguments are given as strings and coerced against the command signature,
so "3" becomes an Int where one is expected. A new session id is generated
when --session is not given.

Example:
  gaq flash push track_event video play intro 3 --tracker rollup
  gaq flash push set_custom_var 1 plan gold 1 --early --session s1`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlashPush(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Tracker, "tracker", "", "tracker name (default tracker when empty)")
	cmd.Flags().BoolVar(&opts.Early, "early", false, "queue in the early phase")

	return cmd
}

func newFlashShowCommand(opts *FlashOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Show the commands queued for a session",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlashShow(opts, cmd)
		},
	}
}

func newFlashListCommand(opts *FlashOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List sessions with a stored flash",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlashList(opts, cmd)
		},
	}
}

func newFlashClearCommand(opts *FlashOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Delete a session's stored flash",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlashClear(opts, cmd)
		},
	}
}

// openStore opens the database named by --db or $GAQ_DB.
func (o *FlashOptions) openStore(cmd *cobra.Command) (*store.Store, error) {
	path := o.Database
	if path == "" {
		envVars, err := config.LoadEnv()
		if err != nil {
			return nil, o.fail(cmd, ExitCommandError, ErrCodeConfigFailed, "failed to read environment", err)
		}
		path = envVars.DB
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, o.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to open database", err)
	}
	return st, nil
}

func (o *FlashOptions) closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger().Error("error closing database", "error", err)
	}
}

func (o *FlashOptions) requireSession(cmd *cobra.Command) error {
	if o.Session == "" {
		return o.fail(cmd, ExitCommandError, ErrCodeNotFound, "--session is required", nil)
	}
	return nil
}

func runFlashPush(opts *FlashPushOptions, args []string, cmd *cobra.Command) error {
	logger := opts.logger()
	reg := language.Builtin()

	raw := make([]any, len(args)-1)
	for i, a := range args[1:] {
		raw[i] = a
	}
	c, err := reg.NewCommand(language.Identifier(args[0]), raw...)
	if err != nil {
		return opts.fail(cmd, ExitFailure, ErrCodeLanguageError, "command rejected", err)
	}
	if opts.Tracker != "" {
		c = c.WithTracker(opts.Tracker)
	}

	sessionID := opts.Session
	if sessionID == "" {
		gen := opts.IDGenerator
		if gen == nil {
			gen = session.UUIDv7Generator{}
		}
		sessionID = gen.Generate()
		logger.Info("generated session id", "session", sessionID)
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	ctx := commandContext(cmd)
	adapter := session.NewAdapter(reg, st.Flash(sessionID), logger)
	early, normal, err := adapter.Load(ctx)
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to load flash", err)
	}
	if opts.Early {
		early = append(early, c)
	} else {
		normal = append(normal, c)
	}
	if err := adapter.Save(ctx, early, normal); err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to save flash", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(FlashContents{
			Session: sessionID,
			Early:   commandViews(early),
			Normal:  commandViews(normal),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), sessionID)
	return nil
}

func runFlashShow(opts *FlashOptions, cmd *cobra.Command) error {
	if err := opts.requireSession(cmd); err != nil {
		return err
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	adapter := session.NewAdapter(language.Builtin(), st.Flash(opts.Session), opts.logger())
	early, normal, err := adapter.Load(commandContext(cmd))
	if err != nil {
		return opts.fail(cmd, ExitFailure, ErrCodeLanguageError, "failed to load flash", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(FlashContents{
			Session: opts.Session,
			Early:   commandViews(early),
			Normal:  commandViews(normal),
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "session %s: %d early, %d normal\n", opts.Session, len(early), len(normal))
	if len(early) > 0 {
		fmt.Fprintln(w, "early:")
		writeCommandListing(cmd, early)
	}
	if len(normal) > 0 {
		fmt.Fprintln(w, "normal:")
		writeCommandListing(cmd, normal)
	}
	return nil
}

func runFlashList(opts *FlashOptions, cmd *cobra.Command) error {
	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	entries, err := st.Sessions(commandContext(cmd))
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to list sessions", err)
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d early\t%d normal\n", e.SessionID, e.Key, e.Early, e.Normal)
	}
	return nil
}

func runFlashClear(opts *FlashOptions, cmd *cobra.Command) error {
	if err := opts.requireSession(cmd); err != nil {
		return err
	}

	st, err := opts.openStore(cmd)
	if err != nil {
		return err
	}
	defer opts.closeStore(st)

	n, err := st.DeleteSession(commandContext(cmd), opts.Session)
	if err != nil {
		return opts.fail(cmd, ExitCommandError, ErrCodeStoreFailed, "failed to clear flash", err)
	}
	opts.logger().Info("flash cleared", "session", opts.Session, "entries", n)

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(map[string]any{"session": opts.Session, "deleted": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries for session %s\n", n, opts.Session)
	return nil
}
