package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/dataset"
)

type generateOptions struct {
	days int
	seed int64
	out  string
	xlsx bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Genera ventas e inventario sintéticos",
		Long: `Genera sales_data.csv e inventory_data.csv (y opcionalmente dataset.xlsx)
con 8 ciudades y 15 productos. La misma semilla produce el mismo dataset.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.OutOrStdout(), opts, time.Now())
		},
	}
	cmd.Flags().IntVar(&opts.days, "days", 30, "días de historial")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "semilla del generador")
	cmd.Flags().StringVar(&opts.out, "out", "data", "directorio de salida")
	cmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "escribir también dataset.xlsx")
	return cmd
}

func runGenerate(w io.Writer, opts *generateOptions, now time.Time) error {
	if opts.days <= 0 {
		return fmt.Errorf("--days debe ser > 0")
	}
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("crear %s: %w", opts.out, err)
	}
	ds := dataset.Generate(dataset.GenerateOptions{Days: opts.days, Seed: opts.seed, Now: now})

	salesPath := filepath.Join(opts.out, "sales_data.csv")
	if err := writeFile(salesPath, func(f io.Writer) error { return dataset.WriteSalesCSV(f, ds.Sales) }); err != nil {
		return err
	}
	invPath := filepath.Join(opts.out, "inventory_data.csv")
	if err := writeFile(invPath, func(f io.Writer) error { return dataset.WriteInventoryCSV(f, ds.Inventory) }); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d filas\n%s: %d filas\n", salesPath, len(ds.Sales), invPath, len(ds.Inventory))

	if opts.xlsx {
		xlsxPath := filepath.Join(opts.out, "dataset.xlsx")
		if err := dataset.WriteXLSX(xlsxPath, ds); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: hojas sales e inventory\n", xlsxPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return f.Close()
}
