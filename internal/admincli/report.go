package admincli

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/presencia-app/presencia/internal/presencia/ledger"
)

func newReportCmd() *cobra.Command {
	var (
		month    string
		employee string
		asCSV    bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Worked-hours report, per employee or global",
		Long: `Worked-hours report.

With --employee, prints that employee's per-day breakdown for the month.
Without it, prints every employee's total for the month (global summary).
Omitting --month reports over the whole ledger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()

			if employee != "" {
				rep, err := e.aggregator.WorkedByDay(cmd.Context(), employee, month)
				if err != nil {
					return err
				}

				if asCSV {
					w := csv.NewWriter(out)
					_ = w.Write([]string{"date", "seconds", "hours"})
					for _, d := range rep.Days {
						_ = w.Write([]string{d.Date, strconv.FormatInt(d.Seconds, 10), ledger.FormatHours(d.Seconds)})
					}
					w.Flush()
					return w.Error()
				}

				for _, d := range rep.Days {
					fmt.Fprintf(out, "%s\t%s\n", d.Date, ledger.FormatHours(d.Seconds))
				}
				fmt.Fprintf(out, "total\t%s\n", ledger.FormatHours(rep.Total))
				return nil
			}

			summary, err := e.aggregator.MonthlySummary(cmd.Context(), month)
			if err != nil {
				return err
			}

			if asCSV {
				w := csv.NewWriter(out)
				_ = w.Write([]string{"employee", "seconds", "hours"})
				for _, t := range summary {
					_ = w.Write([]string{t.Employee, strconv.FormatInt(t.Seconds, 10), ledger.FormatHours(t.Seconds)})
				}
				w.Flush()
				return w.Error()
			}

			for _, t := range summary {
				fmt.Fprintf(out, "%s\t%s\n", t.Employee, ledger.FormatHours(t.Seconds))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to a month (MM/YYYY)")
	cmd.Flags().StringVar(&employee, "employee", "", "per-day breakdown for one employee")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "emit CSV instead of a table")

	return cmd
}
