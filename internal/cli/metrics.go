// internal/cli/metrics.go
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/export"
)

// NewMetricsCommand creates the metrics command.
func NewMetricsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show global totals and averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := opts.OpenStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer release()

			m := store.Metrics()
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), struct {
					domain.Metrics
					Mode domain.Mode `json:"mode"`
				}{m, store.Mode()})
			}

			active := m.ActiveBatch
			if active == "" {
				active = "-"
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Modo\t%s\n", store.Mode())
			fmt.Fprintf(tw, "Total de Lotes\t%d\n", m.TotalBatches)
			fmt.Fprintf(tw, "Total de Motores\t%d\n", m.TotalEngines)
			fmt.Fprintf(tw, "Custo Total (R$)\t%s\n", export.FormatMoney(m.TotalCost))
			fmt.Fprintf(tw, "Custo Médio por Motor (R$)\t%s\n", export.FormatMoney(m.AveragePerEngine))
			fmt.Fprintf(tw, "Custo Médio por Lote (R$)\t%s\n", export.FormatMoney(m.AveragePerBatch))
			fmt.Fprintf(tw, "Lote Ativo\t%s\n", active)
			return tw.Flush()
		},
	}
}
