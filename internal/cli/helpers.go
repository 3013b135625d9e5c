package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/teashop/internal/render"
	"github.com/mesh-intelligence/teashop/internal/sqlite"
	"github.com/mesh-intelligence/teashop/pkg/datatable"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// attach resolves the data directory and attaches a SQLite backend. The
// caller must defer Detach.
func (a *app) attach() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) {
			return nil, fmt.Errorf("config %s: %w", cfgKeyBackend, err)
		}
		return nil, sysErr(fmt.Errorf("attach shop: %w", err))
	}
	return backend, nil
}

// table opens a table on an attached shop.
func table(shop types.Shop, name string) (types.Table, error) {
	tbl, err := shop.GetTable(name)
	if err != nil {
		return nil, sysErr(fmt.Errorf("get %s table: %w", name, err))
	}
	return tbl, nil
}

// resolveID accepts a full ID or the short form shown in listings (the
// trailing characters) and returns the full ID.
func resolveID(tbl types.Table, ref string, idOf func(any) string) (string, error) {
	if ref == "" {
		return "", types.ErrInvalidID
	}
	_, err := tbl.Get(ref)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return "", sysErr(err)
	}

	all, err := tbl.Fetch(nil)
	if err != nil {
		return "", sysErr(err)
	}
	var matches []string
	for _, e := range all {
		if id := idOf(e); strings.HasSuffix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s: %w", ref, types.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s matches %d records: %w", ref, len(matches), types.ErrInvalidID)
	}
}

// pageFlags are the paging flags shared by every list command.
type pageFlags struct {
	page     int
	pageSize int
}

func (p *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page to show (clamped to the last page)")
	cmd.Flags().IntVar(&p.pageSize, "page-size", 0, "records per page (default: page_size from config)")
}

// writeTable prints a rendered page as text, or as a JSON document with
// --json.
func (a *app) writeTable(cmd *cobra.Command, t datatable.RenderedTable) error {
	if a.jsonMode {
		return render.JSON(cmd.OutOrStdout(), t)
	}
	return render.Text(cmd.OutOrStdout(), t)
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return err
}
