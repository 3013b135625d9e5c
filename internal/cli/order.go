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

func orderID(e any) string { return e.(*types.Order).OrderID }

func newOrderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "order",
		Aliases: []string{"orders"},
		Short:   "Take and track customer orders",
	}
	cmd.AddCommand(newOrderListCmd(a))
	cmd.AddCommand(newOrderCreateCmd(a))
	cmd.AddCommand(newOrderStatusCmd(a))
	return cmd
}

func newOrderListCmd(a *app) *cobra.Command {
	var (
		f     views.OrderFilter
		pages pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Long: `List shows one page of orders, newest first.

Search matches order ID or customer name.

Example:
  teashop order list
  teashop order list --status pending
  teashop order list --search chen --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.OrdersTable); err != nil {
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

			orders, err := views.LoadOrders(shop, f)
			if err != nil {
				return sysErr(err)
			}
			listing := views.NewListing(views.OrderColumns(),
				views.Options[*types.Order](views.OrdersEmptyMessage), size, nil)
			return a.writeTable(cmd, listing.RenderPage(f.Key(), orders, pages.page))
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match order ID or customer")
	cmd.Flags().StringVar(&f.Status, "status", "", "filter by status ("+strings.Join(types.OrderStatuses, ", ")+")")
	pages.register(cmd)
	return cmd
}

// parseDrink parses "name:price[:quantity]".
func parseDrink(s string) (types.OrderLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 || strings.TrimSpace(parts[0]) == "" {
		return types.OrderLine{}, fmt.Errorf("drink %q must be name:price[:quantity]: %w", s, types.ErrInvalidData)
	}
	price, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return types.OrderLine{}, fmt.Errorf("drink %q price: %w", s, types.ErrInvalidQuantity)
	}
	qty := 1
	if len(parts) == 3 {
		if qty, err = strconv.Atoi(parts[2]); err != nil {
			return types.OrderLine{}, fmt.Errorf("drink %q quantity: %w", s, types.ErrInvalidQuantity)
		}
	}
	return types.OrderLine{Drink: strings.TrimSpace(parts[0]), UnitPrice: price, Quantity: qty}, nil
}

func newOrderCreateCmd(a *app) *cobra.Command {
	var (
		customer string
		drinks   []string
		line     types.OrderLine
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Take a new order",
		Long: `Create records a pending order. Repeat --drink for each drink, written as
name:price[:quantity]. Size, sugar, ice and toppings apply to every drink.

Example:
  teashop order create --customer "Amy Lin" --drink "Taro Milk Tea:5.49:2" --drink "Matcha Latte:5.99"
  teashop order create --customer Sam --drink "Brown Sugar Boba:6.49" --size large --sugar 50% --topping "Tapioca Pearls"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.OrdersTable); err != nil {
				return err
			}
			order := types.Order{Customer: customer, Status: types.OrderPending}
			for _, d := range drinks {
				l, err := parseDrink(d)
				if err != nil {
					return err
				}
				l.Size, l.Sugar, l.Ice, l.Toppings = line.Size, line.Sugar, line.Ice, line.Toppings
				order.Lines = append(order.Lines, l)
			}

			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.OrdersTable)
			if err != nil {
				return err
			}
			id, err := tbl.Set("", &order)
			if err != nil {
				return fmt.Errorf("create order: %w", err)
			}
			a.logger.Info("order created",
				zap.String("order_id", id),
				zap.Int("lines", len(order.Lines)),
				zap.Float64("total", order.Total()))

			if a.jsonMode {
				return writeJSON(cmd, &order)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s for %s: %s\nSubtotal %s  Tax %s  Total %s\n",
				views.ShortID(id), order.Customer, views.OrderSummary(&order),
				views.Money(order.Subtotal()), views.Money(order.Tax()), views.Money(order.Total()))
			return nil
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "customer name")
	cmd.Flags().StringArrayVar(&drinks, "drink", nil, "drink as name:price[:quantity] (repeatable)")
	cmd.Flags().StringVar(&line.Size, "size", "", "cup size")
	cmd.Flags().StringVar(&line.Sugar, "sugar", "", "sugar level")
	cmd.Flags().StringVar(&line.Ice, "ice", "", "ice level")
	cmd.Flags().StringArrayVar(&line.Toppings, "topping", nil, "topping (repeatable)")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("drink")
	return cmd
}

func newOrderStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <" + strings.Join(types.OrderStatuses[1:], "|") + ">",
		Short: "Move an order along its lifecycle",
		Long: `Status moves an order to a new status. Orders go pending -> processing ->
completed, and can be cancelled until they are completed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.OrdersTable); err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.OrdersTable)
			if err != nil {
				return err
			}
			id, err := resolveID(tbl, args[0], orderID)
			if err != nil {
				return err
			}
			got, err := tbl.Get(id)
			if err != nil {
				return err
			}
			order := got.(*types.Order)
			from := order.Status
			if err := order.Transition(args[1]); err != nil {
				return fmt.Errorf("order %s %s -> %s: %w", views.ShortID(id), from, args[1], err)
			}
			if _, err := tbl.Set(id, order); err != nil {
				return sysErr(err)
			}
			a.logger.Info("order status changed",
				zap.String("order_id", id),
				zap.String("from", from),
				zap.String("to", order.Status))

			if a.jsonMode {
				return writeJSON(cmd, order)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s: %s -> %s\n", views.ShortID(id), from, order.Status)
			return nil
		},
	}
}
