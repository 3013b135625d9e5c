package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/teashop/internal/paths"
	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// Config keys in config.yaml.
const (
	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyPageSize  = "page_size"
	cfgKeyTheme     = "theme"
	cfgKeyRemoteURL = "remote_url"
	cfgKeyHTTPAddr  = "http_addr"
)

const defaultHTTPAddr = "127.0.0.1:8080"

// configKeys lists the keys in display order.
var configKeys = []string{
	cfgKeyBackend,
	cfgKeyDataDir,
	cfgKeyPageSize,
	cfgKeyTheme,
	cfgKeyRemoteURL,
	cfgKeyHTTPAddr,
}

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# teashop configuration

# Storage backend
backend: sqlite

# Data directory (optional; overridden by --data-dir)
# data_dir:

# Records per page in listings
page_size: 10

# Browser theme: light or dark
theme: light

# Health URL checked for the offline indicator (optional)
# remote_url:

# Listen address for 'teashop serve'
http_addr: 127.0.0.1:8080
`

// loadConfig reads config.yaml from configDir with viper, creating the
// directory and a default file on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyPageSize, datatable.DefaultPageSize)
	v.SetDefault(cfgKeyTheme, "light")
	v.SetDefault(cfgKeyHTTPAddr, defaultHTTPAddr)
	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Config prints every configuration key with its effective value, plus the
resolved configuration and data directories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return sysErr(err)
			}
			settings := map[string]any{
				"config_dir":  a.cfgDir,
				"config_file": paths.ConfigFile(a.cfgDir),
			}
			for _, k := range configKeys {
				settings[k] = a.config.Get(k)
			}
			settings[cfgKeyDataDir] = dataDir

			if a.jsonMode {
				return writeJSON(cmd, settings)
			}
			var sb strings.Builder
			w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "config_dir\t%s\n", a.cfgDir)
			fmt.Fprintf(w, "config_file\t%s\n", paths.ConfigFile(a.cfgDir))
			for _, k := range configKeys {
				fmt.Fprintf(w, "%s\t%v\n", k, settings[k])
			}
			w.Flush()
			_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return err
		},
	}
}

// resolveDataDir applies flag > config.yaml > env > default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, a.config.GetString(cfgKeyDataDir))
}

// pageSize returns the page size from the flag, or config when the flag
// is zero. A negative flag is a usage error.
func (a *app) pageSize(flag int) (int, error) {
	if flag < 0 {
		return 0, fmt.Errorf("--page-size must be positive: %w", types.ErrInvalidFilter)
	}
	if flag > 0 {
		return flag, nil
	}
	if n := a.config.GetInt(cfgKeyPageSize); n > 0 {
		return n, nil
	}
	return datatable.DefaultPageSize, nil
}
