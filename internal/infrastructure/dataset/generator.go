package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
)

var (
	sampleCities = []string{"Mumbai", "Delhi", "Bangalore", "Chennai", "Kolkata", "Hyderabad", "Pune", "Ahmedabad"}

	sampleProducts = []string{
		"Smartphone", "Laptop", "Headphones", "Tablet", "Smart Watch",
		"Power Bank", "Bluetooth Speaker", "Gaming Mouse", "Keyboard", "Monitor",
		"Webcam", "Microphone", "Router", "Charger", "Cable",
	}

	sampleCategories = []string{"Electronics", "Computers", "Audio", "Accessories", "Gaming"}

	cityDemand = map[string]float64{
		"Mumbai": 1.3, "Delhi": 1.2, "Bangalore": 1.1, "Chennai": 1.0,
		"Kolkata": 0.9, "Hyderabad": 0.95, "Pune": 0.85, "Ahmedabad": 0.8,
	}
	productDemand = map[string]float64{
		"Smartphone": 1.5, "Laptop": 1.2, "Headphones": 1.1, "Tablet": 1.0, "Smart Watch": 1.3,
		"Power Bank": 0.9, "Bluetooth Speaker": 0.8, "Gaming Mouse": 0.7, "Keyboard": 0.6, "Monitor": 0.8,
	}
	cityStock = map[string]float64{
		"Mumbai": 1.2, "Delhi": 1.1, "Bangalore": 1.0, "Chennai": 0.9,
		"Kolkata": 0.8, "Hyderabad": 0.85, "Pune": 0.75, "Ahmedabad": 0.7,
	}
	productStock = map[string]float64{
		"Smartphone": 1.3, "Laptop": 0.8, "Headphones": 1.5, "Tablet": 1.0, "Smart Watch": 1.2,
		"Power Bank": 1.4, "Bluetooth Speaker": 1.1, "Gaming Mouse": 1.3, "Keyboard": 1.2, "Monitor": 0.9,
	}
)

// GenerateOptions parámetros del generador de datos de ejemplo.
type GenerateOptions struct {
	Days int       // días de historial (default 30)
	Seed int64     // misma semilla = mismo dataset
	Now  time.Time // último día generado es el anterior a Now
}

// Generate arma un dataset sintético: ventas diarias por ciudad y producto con efecto
// fin de semana y multiplicadores por ciudad/producto, e inventario con ~10% de ítems bajos.
func Generate(opts GenerateOptions) *Dataset {
	if opts.Days <= 0 {
		opts.Days = 30
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	start := time.Date(opts.Now.Year(), opts.Now.Month(), opts.Now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -opts.Days)

	ds := &Dataset{
		Sales:     make([]entity.SalesRecord, 0, opts.Days*len(sampleCities)*len(sampleProducts)),
		Inventory: make([]entity.InventoryRecord, 0, len(sampleCities)*len(sampleProducts)),
	}

	for d := 0; d < opts.Days; d++ {
		date := start.AddDate(0, 0, d)
		weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		for _, city := range sampleCities {
			for _, product := range sampleProducts {
				base := float64(5 + rng.Intn(46))
				if weekend {
					base = float64(int(base * 0.8))
				}
				units := int(base*factor(cityDemand, city)*factor(productDemand, product)) + rng.Intn(9) - 3
				if units < 0 {
					units = 0
				}
				price := decimal.NewFromFloat(1000 + rng.Float64()*49000)
				ds.Sales = append(ds.Sales, entity.SalesRecord{
					Date:          date,
					City:          city,
					Product:       product,
					Category:      sampleCategories[rng.Intn(len(sampleCategories))],
					UnitsSold:     units,
					Revenue:       price.Mul(decimal.NewFromInt(int64(units))).Round(2),
					AvgOrderValue: decimal.NewFromFloat(1500 + rng.Float64()*1000).Round(2),
				})
			}
		}
	}

	for _, city := range sampleCities {
		for _, product := range sampleProducts {
			stock := int(float64(50+rng.Intn(451)) * factor(cityStock, city) * factor(productStock, product))
			if rng.Float64() < 0.1 {
				stock = 5 + rng.Intn(16)
			}
			capacity := float64(stock) * (3 + rng.Float64()*2)
			ds.Inventory = append(ds.Inventory, entity.InventoryRecord{
				City:          city,
				Product:       product,
				Category:      sampleCategories[rng.Intn(len(sampleCategories))],
				CurrentStock:  stock,
				MaxCapacity:   int(capacity),
				ReorderLevel:  int(capacity * 0.25),
				CostPerUnit:   decimal.NewFromFloat(500 + rng.Float64()*29500).Round(2),
				Supplier:      fmt.Sprintf("Supplier_%d", 1+rng.Intn(5)),
				LeadTimeDays:  2 + rng.Intn(6),
				LastRestocked: start.AddDate(0, 0, opts.Days-1-rng.Intn(15)),
			})
		}
	}
	return ds
}

func factor(m map[string]float64, key string) float64 {
	if f, ok := m[key]; ok {
		return f
	}
	return 1.0
}
