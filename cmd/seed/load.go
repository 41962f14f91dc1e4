package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/dataset"
	"github.com/jhoicas/qcommerce-agent/internal/infrastructure/postgres"
	"github.com/jhoicas/qcommerce-agent/pkg/config"
	"github.com/jhoicas/qcommerce-agent/pkg/logger"
)

type loadOptions struct {
	sales     string
	inventory string
	xlsx      string
	encoding  string
	timeout   time.Duration
}

func newLoadCmd() *cobra.Command {
	opts := &loadOptions{}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Carga ventas e inventario en PostgreSQL",
		Long: `Crea el esquema si no existe y reemplaza sales_data e inventory_data
en una sola transacción. La conexión se toma de DATABASE_URL o DB_*.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := readDataset(opts)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			res, err := postgres.BulkLoad(ctx, pool, ds.Sales, ds.Inventory)
			if err != nil {
				return err
			}
			log.Info().Int64("sales", res.Sales).Int64("inventory", res.Inventory).Msg("dataset cargado")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.sales, "sales", "data/sales_data.csv", "CSV de ventas")
	cmd.Flags().StringVar(&opts.inventory, "inventory", "data/inventory_data.csv", "CSV de inventario")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "libro XLSX con hojas sales e inventory (reemplaza --sales/--inventory)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "utf-8", "codificación de los CSV: utf-8, latin1, windows-1252")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 2*time.Minute, "tiempo máximo de la carga")
	return cmd
}

func readDataset(opts *loadOptions) (*dataset.Dataset, error) {
	if opts.xlsx != "" {
		return dataset.LoadXLSX(opts.xlsx)
	}
	ds, err := dataset.LoadCSV(opts.sales, opts.inventory, dataset.Options{Encoding: opts.encoding})
	if err != nil {
		return nil, fmt.Errorf("leer dataset: %w", err)
	}
	return ds, nil
}
