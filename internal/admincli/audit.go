package admincli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
)

func newAuditCmd() *cobra.Command {
	var (
		month    string
		employee string
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Re-verify event signatures and report tampering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			rep, err := e.auditor.Audit(cmd.Context(), ledger.AuditFilter{
				Employee: employee,
				Month:    month,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, row := range rep.Rows {
				fmt.Fprintf(out, "%-9s %s %s %-10s %s\n", row.Class, row.Date, row.Time, row.Kind, row.Employee)
			}
			fmt.Fprintf(out, "ok=%d tampered=%d unsigned=%d malformed=%d\n",
				rep.Counts[ledger.ClassOK],
				rep.Counts[ledger.ClassTampered],
				rep.Counts[ledger.ClassUnsigned],
				rep.Counts[ledger.ClassMalformed],
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to a month (MM/YYYY)")
	cmd.Flags().StringVar(&employee, "employee", "", "restrict to one employee")

	return cmd
}
