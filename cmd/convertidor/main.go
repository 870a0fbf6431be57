package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Aashish23092/planilla-ledger/config"
	"github.com/Aashish23092/planilla-ledger/dto"
	"github.com/Aashish23092/planilla-ledger/service"
)

var (
	// Version is set via ldflags when building.
	Version = "dev"

	cli struct {
		Version kong.VersionFlag `help:"Show version information"`

		Input        string  `arg:"" help:"Payroll PDF to convert." type:"existingfile"`
		Output       string  `short:"o" help:"Output workbook (defaults to <input>_limpia.xlsx)." type:"path"`
		Password     string  `help:"Password of an encrypted PDF." env:"PDF_PASSWORD"`
		Heuristics   string  `help:"YAML file overriding markers, thresholds and schema." type:"path" env:"HEURISTICS_FILE"`
		Strict       bool    `help:"Require at least 10 non-empty cells per employee row."`
		DecimalComma bool    `help:"Read amounts written as 1.234,50."`
		Workers      int     `help:"Pages processed in parallel." default:"4"`
		ColumnGap    float64 `help:"Horizontal gap, in points, that separates two cells." default:"8"`
		Diagnostics  bool    `help:"Print every discarded row with its reason."`
	}
)

func main() {
	ctx := kong.Parse(&cli,
		kong.Vars{"version": Version},
		kong.Name("convertidor"),
		kong.Description("Rebuilds a clean payroll workbook from a payroll PDF."),
		kong.UsageOnError(),
	)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(runCtx, ctx.Stdout)
	ctx.FatalIfErrorf(err)
}

func run(ctx context.Context, out io.Writer) error {
	cfg := &config.Config{
		HeuristicsFile: cli.Heuristics,
		StrictRows:     cli.Strict,
		DecimalComma:   cli.DecimalComma,
	}
	heuristics, err := cfg.Heuristics()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cli.Input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cli.Input, err)
	}

	opts := service.DefaultExtractOptions()
	opts.ColumnGap = cli.ColumnGap

	exporter := service.NewXLSXExporter()
	svc := service.NewPayrollService(
		service.NewPDFProcessor(opts),
		nil,
		service.NewLedgerBuilder(heuristics, cli.Workers),
		exporter,
	)

	fmt.Fprintln(out, "Leyendo y procesando planilla...")

	ledger, pages, err := svc.BuildLedger(ctx, data, cli.Password)
	if err != nil {
		return err
	}

	if cli.Diagnostics {
		printDiagnostics(out, ledger)
	}

	if ledger.IsEmpty() {
		return dto.ErrNoData
	}

	workbook, err := exporter.Export(ledger)
	if err != nil {
		return err
	}

	output := cli.Output
	if output == "" {
		output = strings.TrimSuffix(cli.Input, filepath.Ext(cli.Input)) + "_limpia.xlsx"
	}
	if err := os.WriteFile(output, workbook, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Fprintf(out, "%d páginas, %d empleados\n", pages, len(ledger.Records))
	fmt.Fprintf(out, "Los datos limpios están en: %s\n", output)
	return nil
}

func printDiagnostics(out io.Writer, ledger *dto.Ledger) {
	for _, o := range ledger.Outcomes {
		if o.Kept {
			continue
		}
		fmt.Fprintf(out, "p%d r%d %-11s %s\n", o.Page, o.Row, o.Reason, o.Text)
	}
	counts := ledger.DiscardCounts()
	for _, reason := range dto.DiscardReasons {
		fmt.Fprintf(out, "%s: %d\n", reason, counts[reason])
	}
}
