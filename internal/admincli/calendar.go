package admincli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/presencia-app/presencia/internal/presencia/types"
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage blackout days (holidays and vacations)",
	}
	cmd.AddCommand(newCalendarImportCmd())
	cmd.AddCommand(newCalendarListCmd())
	return cmd
}

// blackoutFile is the YAML layout for calendar import:
//
//	ranges:
//	  - from: 24/12/2025
//	    to: 26/12/2025
//	    scope: GLOBAL
//	    reason: Navidad
//	  - from: 02/03/2026
//	    to: 06/03/2026
//	    scope: INDIVIDUAL
//	    employee: Ana García
//	    reason: Vacaciones
type blackoutFile struct {
	Ranges []types.CalendarRange `yaml:"ranges"`
}

func newCalendarImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Expand blackout ranges from a YAML file into per-day rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			var file blackoutFile
			if err := yaml.Unmarshal(raw, &file); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if len(file.Ranges) == 0 {
				return fmt.Errorf("%s contains no ranges", args[0])
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			total := 0
			for _, rg := range file.Ranges {
				blocks, err := e.planner.AddRange(cmd.Context(), rg)
				if err != nil {
					return fmt.Errorf("range %s..%s: %w", rg.From, rg.To, err)
				}
				total += len(blocks)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d blackout day(s)\n", total)
			return nil
		},
	}
}

func newCalendarListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List blackout days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			blocks, err := e.planner.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, b := range blocks {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", b.Date, b.Scope, b.Employee, b.Reason)
			}
			return nil
		},
	}
}
