package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func inventoryID(e any) string { return e.(*types.InventoryItem).ItemID }

func newInventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Track tea, milk, toppings and cups",
	}
	cmd.AddCommand(newInventoryListCmd(a))
	cmd.AddCommand(newInventoryAddCmd(a))
	cmd.AddCommand(newInventoryAdjustCmd(a))
	cmd.AddCommand(newInventoryRestockCmd(a))
	cmd.AddCommand(newInventoryDeleteCmd(a))
	return cmd
}

func newInventoryListCmd(a *app) *cobra.Command {
	var (
		f     views.InventoryFilter
		pages pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inventory items",
		Long: `List shows one page of inventory items ordered by name.

Search matches item name or supplier. Status is one of ok, low or out.

Example:
  teashop inventory list
  teashop inventory list --status low
  teashop inventory list --search tea --page 2 --page-size 5
  teashop inventory list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.InventoryTable); err != nil {
				return err
			}
			size, err := a.pageSize(pages.pageSize)
			if err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			items, err := views.LoadInventory(shop, f)
			if err != nil {
				return sysErr(err)
			}
			listing := views.NewListing(views.InventoryColumns(),
				views.Options[*types.InventoryItem](views.InventoryEmptyMessage), size, nil)
			return a.writeTable(cmd, listing.RenderPage(f.Key(), items, pages.page))
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match item name or supplier")
	cmd.Flags().StringVar(&f.Category, "category", "", "filter by category ("+strings.Join(types.InventoryCategories, ", ")+")")
	cmd.Flags().StringVar(&f.Status, "status", "", "filter by stock status (ok, low, out)")
	pages.register(cmd)
	return cmd
}

func newInventoryAddCmd(a *app) *cobra.Command {
	var item types.InventoryItem
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an inventory item (managers only)",
		Long: `Add creates an inventory item.

Example:
  teashop inventory add --name "Oolong Tea" --category tea --stock 10 --threshold 3 --unit kg --supplier "Premium Tea Suppliers"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireManager(); err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.InventoryTable)
			if err != nil {
				return err
			}
			id, err := tbl.Set("", &item)
			if err != nil {
				return fmt.Errorf("add item: %w", err)
			}
			a.logger.Info("inventory item added", zap.String("item_id", id), zap.String("name", item.Name))

			if a.jsonMode {
				return writeJSON(cmd, &item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.Name, views.ShortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&item.Name, "name", "", "item name")
	cmd.Flags().StringVar(&item.Category, "category", "", "category ("+strings.Join(types.InventoryCategories, ", ")+")")
	cmd.Flags().Float64Var(&item.CurrentStock, "stock", 0, "current stock")
	cmd.Flags().Float64Var(&item.Threshold, "threshold", 0, "reorder threshold")
	cmd.Flags().StringVar(&item.Unit, "unit", "", "unit of measure (kg, L, pcs)")
	cmd.Flags().StringVar(&item.Supplier, "supplier", "", "supplier name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newInventoryAdjustCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <id> <delta>",
		Short: "Add to or consume from an item's stock",
		Long: `Adjust changes an item's current stock by delta. Use a negative delta to
record consumption; put it after -- so it is not read as a flag. Stock never
goes below zero.

Example:
  teashop inventory adjust 9c0d1e2f 20
  teashop inventory adjust 9c0d1e2f -- -1.5`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("delta %q is not a number: %w", args[1], types.ErrInvalidQuantity)
			}
			if _, err := a.requireSession(types.InventoryTable); err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.InventoryTable)
			if err != nil {
				return err
			}
			id, err := resolveID(tbl, args[0], inventoryID)
			if err != nil {
				return err
			}
			got, err := tbl.Get(id)
			if err != nil {
				return err
			}
			item := got.(*types.InventoryItem)
			if err := item.Adjust(delta); err != nil {
				return fmt.Errorf("adjust %s by %g: %w", item.Name, delta, err)
			}
			if _, err := tbl.Set(id, item); err != nil {
				return sysErr(err)
			}
			a.logger.Info("stock adjusted",
				zap.String("item_id", id),
				zap.Float64("delta", delta),
				zap.Float64("stock", item.CurrentStock))

			if a.jsonMode {
				return writeJSON(cmd, item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %g %s (%s)\n",
				item.Name, item.CurrentStock, item.Unit, views.StockBadge(item.Status()))
			return nil
		},
	}
}

func newInventoryRestockCmd(a *app) *cobra.Command {
	var supplier, urgency, note string
	cmd := &cobra.Command{
		Use:   "restock <id> <quantity>",
		Short: "Record a supply order received for an item",
		Long: `Restock adds a delivered supply order to an item's stock. --supplier
replaces the item's supplier; --urgency and --note are recorded in the log
with the order.

Example:
  teashop inventory restock 9c0d1e2f 24 --supplier "Fresh Dairy Co." --urgency high`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("quantity %q is not a number: %w", args[1], types.ErrInvalidQuantity)
			}
			if !types.ValidUrgency(urgency) {
				return fmt.Errorf("--urgency %q must be one of %s: %w",
					urgency, strings.Join(types.SupplyUrgencies, ", "), types.ErrInvalidData)
			}
			sess, err := a.requireSession(types.InventoryTable)
			if err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.InventoryTable)
			if err != nil {
				return err
			}
			id, err := resolveID(tbl, args[0], inventoryID)
			if err != nil {
				return err
			}
			got, err := tbl.Get(id)
			if err != nil {
				return err
			}
			item := got.(*types.InventoryItem)
			if err := item.Restock(qty, strings.TrimSpace(supplier)); err != nil {
				return fmt.Errorf("restock %s with %g: %w", item.Name, qty, err)
			}
			if _, err := tbl.Set(id, item); err != nil {
				return sysErr(err)
			}
			a.logger.Info("supply order received",
				zap.String("item_id", id),
				zap.Float64("quantity", qty),
				zap.String("supplier", item.Supplier),
				zap.String("urgency", urgency),
				zap.String("note", note),
				zap.String("received_by", sess.Email),
				zap.Float64("stock", item.CurrentStock))

			if a.jsonMode {
				return writeJSON(cmd, item)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %g %s from %s (%s)\n",
				item.Name, item.CurrentStock, item.Unit, item.Supplier, views.StockBadge(item.Status()))
			return nil
		},
	}
	cmd.Flags().StringVar(&supplier, "supplier", "", "supplier that delivered the order")
	cmd.Flags().StringVar(&urgency, "urgency", types.UrgencyNormal, "order urgency: low, normal, high or critical")
	cmd.Flags().StringVar(&note, "note", "", "free-text note kept with the order")
	return cmd
}

func newInventoryDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an inventory item (managers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireManager(); err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.InventoryTable)
			if err != nil {
				return err
			}
			id, err := resolveID(tbl, args[0], inventoryID)
			if err != nil {
				return err
			}
			if err := tbl.Delete(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", views.ShortID(id))
			return nil
		},
	}
}
