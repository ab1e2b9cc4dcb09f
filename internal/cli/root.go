// Package cli implements the pantry command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/logging"
	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/internal/source"
	"github.com/mesh-intelligence/pantry/pkg/sqlite"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app carries the state shared by the commands of one invocation.
type app struct {
	flags    rootFlags
	settings settings
	logger   *slog.Logger
	stderr   io.Writer
}

// NewRootCmd creates the top-level "pantry" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{stderr: os.Stderr}

	root := &cobra.Command{
		Use:   "pantry",
		Short: "Track food donations, claims and waste risk",
		Long: "Pantry loads providers, receivers, food listings and claims into a local\n" +
			"SQLite store, runs a fixed catalog of reports over them, and edits\n" +
			"listings and claims.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.pantry-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newRebuildCmd(a),
		newReportCmd(a),
		newListingCmd(a),
		newClaimCmd(a),
		newOptionsCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// load resolves directories, reads config.yaml and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	a.stderr = cmd.ErrOrStderr()

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.settings, err = loadSettings(configDir, a.flags.dataDir)
	if err != nil {
		return err
	}
	a.logger, err = logging.New(logging.Config{Level: a.settings.logLevel, Format: a.settings.logFormat}, a.stderr)
	if err != nil {
		return usageError(err)
	}
	return nil
}

// openStore attaches a store on the resolved data directory. The caller must
// Detach it.
func (a *app) openStore() (types.Store, error) {
	store := sqlite.NewBackend(sqlite.WithLogger(logging.WithComponent(a.logger, "store")))
	if err := store.Attach(a.settings.store); err != nil {
		return nil, fmt.Errorf("attach store: %w", err)
	}
	return store, nil
}

// withStore runs fn on an attached store and detaches afterwards.
func (a *app) withStore(fn func(types.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if derr := store.Detach(); derr != nil {
			a.logger.Warn("detach failed", "error", derr)
		}
	}()
	return fn(store)
}

// errUsage marks errors caused by bad arguments or flags.
var errUsage = errors.New("usage")

type usageErr struct{ err error }

func (e usageErr) Error() string { return e.err.Error() }

func (e usageErr) Unwrap() []error { return []error{e.err, errUsage} }

func usageError(err error) error {
	return usageErr{err}
}

func usagef(format string, args ...any) error {
	return usageError(fmt.Errorf(format, args...))
}

// exactArgs is cobra.ExactArgs with the error marked as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// userErrors are the store errors caused by the request rather than the
// system.
var userErrors = []error{
	errUsage,
	types.ErrNotFound,
	types.ErrDuplicateKey,
	types.ErrInvalidStatus,
	types.ErrInvalidID,
	types.ErrInvalidRecord,
	types.ErrReferenceNotFound,
	types.ErrQueryNotFound,
	types.ErrInvalidFilter,
	types.ErrSchema,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrExpiryWindowInvalid,
	source.ErrUnknownFormat,
	logging.ErrUnknownLevel,
	logging.ErrUnknownFormat,
}

// exitCode returns exitUserError for errors caused by the caller and
// exitSysError for everything else.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}
