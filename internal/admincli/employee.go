package admincli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees and their clock-in tokens",
	}
	cmd.AddCommand(newEmployeeAddCmd())
	cmd.AddCommand(newEmployeeListCmd())
	return cmd
}

func newEmployeeAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Create an employee and print the clock-in link",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			name := strings.Join(args, " ")
			resp, err := e.roster.Create(cmd.Context(), name)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\ntoken: %s\n", resp.Name, resp.Token)
			if resp.Link != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "link:  %s\n", resp.Link)
			}
			return nil
		},
	}
}

func newEmployeeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees and tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			emps, err := e.roster.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, emp := range emps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", emp.Token, emp.Name)
			}
			return nil
		},
	}
}
