package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Hojas esperadas en el libro; si no existen se usan la primera (ventas) y la segunda (inventario).
const (
	SalesSheet     = "sales"
	InventorySheet = "inventory"
)

// LoadXLSX lee ventas e inventario de un libro Excel.
func LoadXLSX(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	salesName, invName, err := pickSheets(f.GetSheetList())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	salesRows, err := f.GetRows(salesName)
	if err != nil {
		return nil, fmt.Errorf("%s: hoja %s: %w", path, salesName, err)
	}
	st, err := newTable("hoja "+salesName, salesRows)
	if err != nil {
		return nil, err
	}
	sales, err := st.sales()
	if err != nil {
		return nil, err
	}

	invRows, err := f.GetRows(invName)
	if err != nil {
		return nil, fmt.Errorf("%s: hoja %s: %w", path, invName, err)
	}
	it, err := newTable("hoja "+invName, invRows)
	if err != nil {
		return nil, err
	}
	inv, err := it.inventory()
	if err != nil {
		return nil, err
	}
	return &Dataset{Sales: sales, Inventory: inv}, nil
}

func pickSheets(names []string) (string, string, error) {
	var sales, inv string
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case SalesSheet:
			sales = n
		case InventorySheet:
			inv = n
		}
	}
	if sales != "" && inv != "" {
		return sales, inv, nil
	}
	if len(names) < 2 {
		return "", "", fmt.Errorf("se esperaban las hojas %q y %q", SalesSheet, InventorySheet)
	}
	return names[0], names[1], nil
}

// WriteXLSX guarda el dataset en un libro con las hojas sales e inventory.
func WriteXLSX(path string, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SalesSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(SalesSheet, "A1", &salesHeader); err != nil {
		return err
	}
	for i, s := range ds.Sales {
		row := []any{s.Date.Format("2006-01-02"), s.City, s.Product, s.Category, s.UnitsSold,
			s.Revenue.InexactFloat64(), s.AvgOrderValue.InexactFloat64()}
		if err := f.SetSheetRow(SalesSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(InventorySheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeader); err != nil {
		return err
	}
	for i, r := range ds.Inventory {
		last := ""
		if !r.LastRestocked.IsZero() {
			last = r.LastRestocked.Format("2006-01-02")
		}
		row := []any{r.City, r.Product, r.Category, r.CurrentStock, r.MaxCapacity, r.ReorderLevel,
			r.CostPerUnit.InexactFloat64(), r.Supplier, r.LeadTimeDays, last}
		if err := f.SetSheetRow(InventorySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
