// internal/cli/export.go
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/export"
)

// ExportOptions holds flags for the export commands.
type ExportOptions struct {
	*RootOptions
	Kind string
	Out  string
}

// NewExportCommand creates the export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write CSV, XLSX or JSON backup files",
		Long: `Write report files from the current store contents.

When --out is omitted the file is written to the working directory with a
timestamped name; "-" writes to stdout.

Examples:
  retificactl export csv --kind engines
  retificactl export csv --kind summary --out resumo.csv
  retificactl export xlsx --out relatorio.xlsx
  retificactl export backup --out -`,
	}

	cmd.AddCommand(newExportFileCommand(rootOpts, "csv", "Write a CSV report", export.FormatCSV, true))
	cmd.AddCommand(newExportFileCommand(rootOpts, "xlsx", "Write the XLSX workbook", export.FormatXLSX, false))
	cmd.AddCommand(newExportFileCommand(rootOpts, "backup", "Write a JSON backup", export.FormatJSON, false))
	return cmd
}

func newExportFileCommand(rootOpts *RootOptions, use, short string, format export.Format, withKind bool) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, format)
		},
	}

	if withKind {
		cmd.Flags().StringVar(&opts.Kind, "kind", string(export.KindEngines), "report kind (engines|batches|summary)")
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", `output file ("-" for stdout)`)
	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, format export.Format) error {
	var kind export.Kind
	if format == export.FormatCSV {
		k, err := export.ParseKind(opts.Kind)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --kind", err)
		}
		kind = k
	}

	store, release, err := opts.OpenStore(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer release()

	data := export.Dataset{Batches: store.Batches(), Engines: store.Engines()}

	out := opts.Out
	if out == "" {
		out = export.Filename(export.FilePrefix(format, kind), string(format), time.Now())
	}

	var w io.Writer = cmd.OutOrStdout()
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Render(w, format, kind, data); err != nil {
		return err
	}

	if out != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d lotes, %d motores\n", out, len(data.Batches), len(data.Engines))
	}
	return nil
}
