// Package cli implements the teashop command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/logging"
	"github.com/mesh-intelligence/teashop/internal/paths"
	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// sysError marks failures of the environment (storage, filesystem,
// network) as opposed to mistakes in the command line.
type sysError struct{ err error }

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// app holds global flag values and the state every subcommand shares.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	cfgDir string
	config *viper.Viper
	logger *zap.Logger
}

// NewRootCmd creates the top-level "teashop" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "teashop",
		Short: "Run a bubble tea shop from the terminal",
		Long: "Teashop manages a bubble tea shop's inventory, staff, orders and sales\n" +
			"reports, with paginated listings in the terminal, a browser UI and an HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = a.logger.Sync()
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newLoginCmd(a), newLogoutCmd(a), newWhoamiCmd(a))
	root.AddCommand(newInventoryCmd(a))
	root.AddCommand(newEmployeeCmd(a))
	root.AddCommand(newOrderCmd(a))
	root.AddCommand(newReportCmd(a))
	root.AddCommand(newBrowseCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newDashboardCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// setup resolves the config directory, loads config.yaml and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return sysErr(err)
	}
	a.cfgDir = dir
	a.config = cfg
	a.logger = logging.New(a.verbose, cmd.ErrOrStderr())
	a.logger.Debug("config loaded", zap.String("config_dir", dir))
	return nil
}

// sessionPath returns the session file in the resolved config directory.
func (a *app) sessionPath() string {
	return paths.SessionFile(a.cfgDir)
}

// loadSession returns the signed-in employee's session.
func (a *app) loadSession() (*session.Session, error) {
	sess, err := session.Load(a.sessionPath())
	if err != nil {
		if errors.Is(err, types.ErrNotLoggedIn) {
			return nil, fmt.Errorf("%w: run 'teashop login <email>' first", err)
		}
		return nil, sysErr(err)
	}
	return sess, nil
}

// requireSession loads the current session and checks it may use table.
func (a *app) requireSession(table string) (*session.Session, error) {
	sess, err := a.loadSession()
	if err != nil {
		return nil, err
	}
	if err := sess.Authorize(table); err != nil {
		return nil, err
	}
	return sess, nil
}

// requireManager loads the current session and checks it is a manager's.
func (a *app) requireManager() (*session.Session, error) {
	sess, err := a.requireSession(types.InventoryTable)
	if err != nil {
		return nil, err
	}
	if err := sess.RequireRole(types.RoleManager); err != nil {
		return nil, err
	}
	return sess, nil
}
