package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/views"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func employeeID(e any) string { return e.(*types.Employee).EmployeeID }

func newEmployeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Manage staff (managers only)",
	}
	cmd.AddCommand(newEmployeeListCmd(a))
	cmd.AddCommand(newEmployeeAddCmd(a))
	cmd.AddCommand(newEmployeeStatusCmd(a, "deactivate", "Mark an employee inactive", (*types.Employee).Deactivate))
	cmd.AddCommand(newEmployeeStatusCmd(a, "activate", "Mark an employee active", (*types.Employee).Activate))
	return cmd
}

func newEmployeeListCmd(a *app) *cobra.Command {
	var (
		f     views.EmployeeFilter
		pages pageFlags
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Long: `List shows one page of employees ordered by name.

Search matches name, email or role.

Example:
  teashop employee list
  teashop employee list --role staff --status active
  teashop employee list --search jane --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.EmployeesTable); err != nil {
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

			employees, err := views.LoadEmployees(shop, f)
			if err != nil {
				return sysErr(err)
			}
			listing := views.NewListing(views.EmployeeColumns(),
				views.Options[*types.Employee](views.EmployeesEmptyMessage), size, nil)
			return a.writeTable(cmd, listing.RenderPage(f.Key(), employees, pages.page))
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match name, email or role")
	cmd.Flags().StringVar(&f.Role, "role", "", "filter by role (manager, staff)")
	cmd.Flags().StringVar(&f.Status, "status", "", "filter by status (active, inactive)")
	pages.register(cmd)
	return cmd
}

func newEmployeeAddCmd(a *app) *cobra.Command {
	e := types.Employee{Role: types.RoleStaff}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Long: `Add creates an active employee. Emails are unique.

Example:
  teashop employee add --name "Amy Lin" --email amy.lin@bubbletea.com --phone "(555) 678-9012"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.requireSession(types.EmployeesTable); err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.EmployeesTable)
			if err != nil {
				return err
			}
			e.Status = types.EmployeeActive
			id, err := tbl.Set("", &e)
			if err != nil {
				return fmt.Errorf("add employee: %w", err)
			}
			a.logger.Info("employee added", zap.String("employee_id", id), zap.String("email", e.Email))

			if a.jsonMode {
				return writeJSON(cmd, &e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s <%s> as %s (%s)\n", e.Name, e.Email, e.Role, views.ShortID(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&e.Name, "name", "", "full name")
	cmd.Flags().StringVar(&e.Email, "email", "", "email address, used to log in")
	cmd.Flags().StringVar(&e.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&e.Role, "role", types.RoleStaff, "role (manager, staff)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// newEmployeeStatusCmd builds activate and deactivate. Managers cannot
// change their own status.
func newEmployeeStatusCmd(a *app, use, short string, apply func(*types.Employee)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.requireSession(types.EmployeesTable)
			if err != nil {
				return err
			}
			shop, err := a.attach()
			if err != nil {
				return err
			}
			defer shop.Detach()

			tbl, err := table(shop, types.EmployeesTable)
			if err != nil {
				return err
			}
			id, err := resolveID(tbl, args[0], employeeID)
			if err != nil {
				return err
			}
			if id == sess.EmployeeID {
				return fmt.Errorf("cannot %s yourself: %w", use, types.ErrForbidden)
			}
			got, err := tbl.Get(id)
			if err != nil {
				return err
			}
			e := got.(*types.Employee)
			apply(e)
			if _, err := tbl.Set(id, e); err != nil {
				return sysErr(err)
			}
			a.logger.Info("employee status changed", zap.String("employee_id", id), zap.String("status", e.Status))

			if a.jsonMode {
				return writeJSON(cmd, e)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", e.Name, e.Status)
			return nil
		},
	}
}
