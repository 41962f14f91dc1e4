package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/qcommerce-agent/internal/domain/entity"
	"github.com/jhoicas/qcommerce-agent/internal/domain/repository"
)

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(offset int) time.Time {
	return time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

// fakeRepo implementa SalesRepository e InventoryRepository sobre slices y cuenta lecturas.
type fakeRepo struct {
	sales         []entity.SalesRecord
	inventory     []entity.InventoryRecord
	salesErr      error
	inventoryErr  error
	salesCalls    int
	inventoryCall int
}

func (f *fakeRepo) GetSales(_ context.Context, filter repository.SalesFilter) ([]entity.SalesRecord, error) {
	f.salesCalls++
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	out := make([]entity.SalesRecord, 0)
	for _, s := range f.sales {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetInventory(_ context.Context, filter repository.InventoryFilter) ([]entity.InventoryRecord, error) {
	f.inventoryCall++
	if f.inventoryErr != nil {
		return nil, f.inventoryErr
	}
	out := make([]entity.InventoryRecord, 0)
	for _, r := range f.inventory {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

var errDB = errors.New("db caída")

func sale(offset int, city, product string, units int) entity.SalesRecord {
	return entity.SalesRecord{Date: day(offset), City: city, Product: product, Category: "Electronics", UnitsSold: units}
}
