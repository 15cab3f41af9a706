package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/diewo77/go-cotizaciones/internal/format"
	"github.com/spf13/cobra"
)

func statsCmd(e *env) *cobra.Command {
	var (
		year   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quotation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := e.svc.Stats(year)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			fmt.Fprintf(out, "Total cotizado:  %s\n", format.Money(st.TotalQuoted))
			fmt.Fprintf(out, "Total aprobado:  %s (%d)\n", format.Money(st.TotalApproved), st.ApprovedCount)
			fmt.Fprintf(out, "Tasa aprobación: %d%%\n\n", st.ApprovalRate)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "MES %d\tCOTIZACIONES\tAPROBADAS\tTOTAL\n", st.Year)
			for _, m := range st.Monthly {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", m.Month, m.Count, m.Approved, format.Money(m.Total))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&year, "anio", 0, "year for the monthly breakdown (default current year)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")
	return cmd
}
