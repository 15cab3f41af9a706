package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/diewo77/go-cotizaciones/internal/format"
	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/diewo77/go-cotizaciones/internal/pdf"
	"github.com/diewo77/go-cotizaciones/internal/services"
	"github.com/spf13/cobra"
)

func listCmd(e *env) *cobra.Command {
	var query, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := models.Status(status)
			if st != "" && !st.Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			now := e.svc.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NUMERO\tFECHA\tCLIENTE\tESTATUS\tTOTAL\tID")
			for _, q := range e.svc.Search(query, st) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					q.Number, format.Date(q.Date), e.svc.ClientName(q.ClientID),
					q.EffectiveStatus(now).Label(), format.Money(q.Total), q.ID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "match number, client or status")
	cmd.Flags().StringVar(&status, "estatus", "", "only quotations with this status")
	return cmd
}

func nextNumberCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "next-number",
		Short: "Print the number the next quotation will get",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), e.svc.NextNumber())
			return nil
		},
	}
}

// totals <file|->: compute the totals block of a quotation document without
// storing it.
func totalsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "totals <file|->",
		Short: "Compute the totals of a quotation JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			// an omitted iva falls back to the configured default rate
			q := models.Quotation{TaxRate: models.Number(e.svc.DefaultTax())}
			if err := json.Unmarshal(data, &q); err != nil {
				return fmt.Errorf("decode quotation: %w", err)
			}
			q.Totals = services.QuotationTotals(&q)
			if err := services.CheckTotals(q.Totals); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, item := range q.Items {
				fmt.Fprintf(out, "%-30s %s\n", item.Name, format.Money(services.LineSubtotal(item)))
			}
			for _, l := range pdf.SummaryLines(q) {
				fmt.Fprintf(out, "%-30s %s\n", l.Label, l.Value)
			}
			return nil
		},
	}
}

func statusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <estatus>",
		Short: "Change the status of a quotation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := e.svc.SetStatus(args[0], models.Status(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", q.Number, q.Status.Label())
			return nil
		},
	}
}

func duplicateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <id>",
		Short: "Copy a quotation into a new draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := e.svc.Duplicate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", q.Number, q.ID)
			return nil
		},
	}
}

func pdfCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Render a quotation to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := e.svc.Detail(args[0])
			if err != nil {
				return err
			}
			body, err := pdf.QuotationPDF(pdf.Data{Quotation: d.Quotation, Client: d.Client, Company: e.store.Company()})
			if err != nil {
				return err
			}
			if output == "" {
				output = pdf.Filename(d.Quotation)
			}
			if err := os.WriteFile(output, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default <numero>.pdf)")
	return cmd
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
