package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain"
	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	domaininv "github.com/jhoicas/qcommerce-agent/internal/domain/inventory"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

// DefaultLookbackDays ventana de ventas por defecto para el reparto.
const DefaultLookbackDays = 7

// AllocationUseCase reparte unidades de un producto entre ciudades en proporción
// a las ventas recientes de cada ciudad.
type AllocationUseCase struct {
	salesRepo     repository.SalesRepository
	inventoryRepo repository.InventoryRepository
	lookbackDays  int
	now           func() time.Time
}

// NewAllocationUseCase construye el caso de uso. lookbackDays <= 0 usa DefaultLookbackDays.
func NewAllocationUseCase(
	salesRepo repository.SalesRepository,
	inventoryRepo repository.InventoryRepository,
	lookbackDays int,
) *AllocationUseCase {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &AllocationUseCase{
		salesRepo:     salesRepo,
		inventoryRepo: inventoryRepo,
		lookbackDays:  lookbackDays,
		now:           time.Now,
	}
}

// WithClock reemplaza el reloj (tests, reproducciones).
func (uc *AllocationUseCase) WithClock(now func() time.Time) *AllocationUseCase {
	uc.now = now
	return uc
}

// LookbackDays ventana por defecto configurada.
func (uc *AllocationUseCase) LookbackDays() int { return uc.lookbackDays }

// Allocate calcula el reparto de req.TotalQuantity unidades de req.Product.
//
//  1. Valida cantidad (> 0), producto y ventana. Nada se consulta si la entrada es inválida.
//  2. Lee las ventas del producto en los últimos lookbackDays días y agrega unidades por ciudad.
//  3. Reparte con el método del mayor residuo: Σ asignaciones == TotalQuantity.
//
// Devuelve *domain.InsufficientDataError si el producto no tiene ventas en la ventana.
// lookbackDays <= 0 usa la ventana configurada.
func (uc *AllocationUseCase) Allocate(
	ctx context.Context,
	req entity.AllocationRequest,
	lookbackDays int,
) (*entity.AllocationResult, error) {
	product := strings.TrimSpace(req.Product)
	if product == "" {
		return nil, domain.NewValidationError("product", "es obligatorio")
	}
	if req.TotalQuantity <= 0 {
		return nil, domain.NewValidationError("total_quantity", "debe ser mayor que 0")
	}
	if lookbackDays < 0 {
		return nil, domain.NewValidationError("lookback_days", "no puede ser negativo")
	}
	if lookbackDays == 0 {
		lookbackDays = uc.lookbackDays
	}

	// Ciudades con inventario del producto: reciben 0 explícito si no vendieron.
	stock, err := uc.inventoryRepo.GetInventory(ctx, repository.InventoryFilter{Product: product})
	if err != nil {
		return nil, fmt.Errorf("asignación: leer inventario: %w", err)
	}

	window := repository.LastDays(uc.now(), lookbackDays)
	window.Product = product
	sales, err := uc.salesRepo.GetSales(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("asignación: leer ventas: %w", err)
	}

	if len(stock) == 0 && len(sales) == 0 {
		known, err := uc.productKnown(ctx, product)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, domain.NewValidationError("product", fmt.Sprintf("producto desconocido %q", product))
		}
	}

	unitsByCity := make(map[string]int)
	for _, s := range stock {
		if _, ok := unitsByCity[s.City]; !ok {
			unitsByCity[s.City] = 0
		}
	}
	for _, s := range sales {
		unitsByCity[s.City] += s.UnitsSold
	}

	allocations, err := domaininv.Distribute(unitsByCity, req.TotalQuantity)
	if err != nil {
		if errors.Is(err, domaininv.ErrNoDemand) {
			return nil, &domain.InsufficientDataError{Product: product, LookbackDays: lookbackDays}
		}
		return nil, fmt.Errorf("asignación: %w", err)
	}

	return &entity.AllocationResult{
		Product:       product,
		TotalQuantity: req.TotalQuantity,
		LookbackDays:  lookbackDays,
		Allocations:   allocations,
		UnitsByCity:   unitsByCity,
	}, nil
}

// productKnown busca el producto en todo el historial (sin ventana).
func (uc *AllocationUseCase) productKnown(ctx context.Context, product string) (bool, error) {
	all, err := uc.salesRepo.GetSales(ctx, repository.SalesFilter{Product: product})
	if err != nil {
		return false, fmt.Errorf("asignación: validar producto: %w", err)
	}
	return len(all) > 0, nil
}
