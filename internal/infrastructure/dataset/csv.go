package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

// Options lectura de CSV.
type Options struct {
	// Encoding del archivo: "" o "utf-8" (por defecto), "latin1"/"iso-8859-1", "windows-1252".
	Encoding string
	// Comma separador; 0 = ','.
	Comma rune
}

// decode envuelve r con el decodificador del encoding pedido.
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("encoding no soportado %q", encoding)
	}
}

func readCSV(source string, r io.Reader, opts Options) (*table, error) {
	dr, err := decode(r, opts.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dr)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: leer CSV: %w", source, err)
	}
	return newTable(source, records)
}

// ReadSalesCSV parsea ventas (date, city, product, category, units_sold, revenue, avg_order_value).
func ReadSalesCSV(r io.Reader, opts Options) ([]entity.SalesRecord, error) {
	t, err := readCSV("ventas", r, opts)
	if err != nil {
		return nil, err
	}
	return t.sales()
}

// ReadInventoryCSV parsea inventario. Sin columna reorder_level se deriva de la media del stock.
func ReadInventoryCSV(r io.Reader, opts Options) ([]entity.InventoryRecord, error) {
	t, err := readCSV("inventario", r, opts)
	if err != nil {
		return nil, err
	}
	return t.inventory()
}

// LoadCSV lee ambos archivos.
func LoadCSV(salesPath, inventoryPath string, opts Options) (*Dataset, error) {
	sales, err := readFile(salesPath, func(r io.Reader) ([]entity.SalesRecord, error) { return ReadSalesCSV(r, opts) })
	if err != nil {
		return nil, err
	}
	inv, err := readFile(inventoryPath, func(r io.Reader) ([]entity.InventoryRecord, error) { return ReadInventoryCSV(r, opts) })
	if err != nil {
		return nil, err
	}
	return &Dataset{Sales: sales, Inventory: inv}, nil
}

func readFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

var (
	salesHeader     = []string{"date", "city", "product", "category", "units_sold", "revenue", "avg_order_value"}
	inventoryHeader = []string{"city", "product", "category", "current_stock", "max_capacity", "reorder_level",
		"cost_per_unit", "supplier", "lead_time_days", "last_restocked"}
)

// WriteSalesCSV escribe las ventas con el encabezado canónico.
func WriteSalesCSV(w io.Writer, sales []entity.SalesRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(salesHeader); err != nil {
		return err
	}
	for _, s := range sales {
		if err := cw.Write([]string{
			s.Date.Format("2006-01-02"), s.City, s.Product, s.Category,
			strconv.Itoa(s.UnitsSold), s.Revenue.StringFixed(2), s.AvgOrderValue.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteInventoryCSV escribe el inventario con el encabezado canónico.
func WriteInventoryCSV(w io.Writer, inventory []entity.InventoryRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(inventoryHeader); err != nil {
		return err
	}
	for _, r := range inventory {
		last := ""
		if !r.LastRestocked.IsZero() {
			last = r.LastRestocked.Format("2006-01-02")
		}
		if err := cw.Write([]string{
			r.City, r.Product, r.Category,
			strconv.Itoa(r.CurrentStock), strconv.Itoa(r.MaxCapacity), strconv.Itoa(r.ReorderLevel),
			r.CostPerUnit.StringFixed(2), r.Supplier, strconv.Itoa(r.LeadTimeDays), last,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
