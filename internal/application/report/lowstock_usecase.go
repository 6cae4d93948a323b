package report

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LowStockReportUseCase arma la hoja de reposición: los items en o bajo su
// mínimo, con su categoría, renderizados como PDF.
type LowStockReportUseCase struct {
	itemRepo  repository.ItemRepository
	catRepo   repository.CategoryRepository
	generator LowStockPDFGenerator
}

// NewLowStockReportUseCase construye el caso de uso.
func NewLowStockReportUseCase(
	itemRepo repository.ItemRepository,
	catRepo repository.CategoryRepository,
	generator LowStockPDFGenerator,
) *LowStockReportUseCase {
	return &LowStockReportUseCase{itemRepo: itemRepo, catRepo: catRepo, generator: generator}
}

// Generate devuelve los bytes del PDF con los items en stock bajo.
func (uc *LowStockReportUseCase) Generate(ctx context.Context) ([]byte, error) {
	items, err := uc.itemRepo.List(repository.ItemFilter{LowStock: true})
	if err != nil {
		return nil, err
	}
	cats := map[string]*entity.Category{}
	rows := make([]LowStockRow, 0, len(items))
	for _, it := range items {
		if _, ok := cats[it.CategoryID]; !ok {
			c, err := uc.catRepo.GetByID(it.CategoryID)
			if err != nil {
				return nil, err
			}
			cats[it.CategoryID] = c
		}
		row := LowStockRow{Name: it.Name, Unit: it.Unit, Stock: it.Stock, MinStock: it.MinStock}
		if c := cats[it.CategoryID]; c != nil {
			row.Category = c.Name
		}
		rows = append(rows, row)
	}
	return uc.generator.GenerateLowStockPDF(ctx, rows)
}
