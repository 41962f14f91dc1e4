// seed prepara datos para el agente: genera un dataset de ejemplo y lo carga en PostgreSQL.
//
// Uso:
//
//	go run ./cmd/seed generate --days 30 --out data
//	go run ./cmd/seed load --sales data/sales_data.csv --inventory data/inventory_data.csv [--encoding latin1]
//	go run ./cmd/seed load --xlsx data/dataset.xlsx
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
