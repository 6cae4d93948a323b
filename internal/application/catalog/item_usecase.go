package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Tipos de ajuste directo de stock.
const (
	AdjustIn  = "in"
	AdjustOut = "out"
)

// ItemUseCase CRUD de items del catálogo más el ajuste directo de stock.
// El ajuste aplica las mismas reglas del libro mayor (suficiencia, no
// negatividad) pero sin dejar registro de movimiento.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	catRepo  repository.CategoryRepository
	movRepo  repository.MovementRepository
	txRunner inventory.TxRunner
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	catRepo repository.CategoryRepository,
	movRepo repository.MovementRepository,
	txRunner inventory.TxRunner,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, catRepo: catRepo, movRepo: movRepo, txRunner: txRunner}
}

// List devuelve los items ordenados por nombre con la categoría incluida.
// Filtros: category_id, búsqueda por substring, stock bajo.
func (uc *ItemUseCase) List(f repository.ItemFilter) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(f)
	if err != nil {
		return nil, err
	}
	return uc.withCategories(items)
}

// LowStock devuelve los items con stock <= min_stock.
func (uc *ItemUseCase) LowStock() ([]dto.ItemResponse, error) {
	return uc.List(repository.ItemFilter{LowStock: true})
}

// GetByID devuelve un item con su categoría.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	cat, err := uc.catRepo.GetByID(item.CategoryID)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item, cat)
	return &resp, nil
}

// Create valida los campos (nombre único, categoría existente, stock y
// min_stock >= 0) y persiste el item con su saldo inicial.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	verr := &domain.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "el nombre es requerido")
	} else if len(in.Name) > 255 {
		verr.Add("name", "el nombre no puede exceder 255 caracteres")
	}
	if in.CategoryID == "" {
		verr.Add("category_id", "la categoría es requerida")
	}
	if in.Stock == nil {
		verr.Add("stock", "el stock es requerido")
	} else if *in.Stock < 0 {
		verr.Add("stock", "el stock no puede ser negativo")
	}
	if in.MinStock == nil {
		verr.Add("min_stock", "el stock mínimo es requerido")
	} else if *in.MinStock < 0 {
		verr.Add("min_stock", "el stock mínimo no puede ser negativo")
	}
	if len(in.Unit) > 50 {
		verr.Add("unit", "la unidad no puede exceder 50 caracteres")
	}

	var cat *entity.Category
	if in.CategoryID != "" {
		var err error
		cat, err = uc.catRepo.GetByID(in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			verr.Add("category_id", "la categoría no existe")
		}
	}
	if in.Name != "" {
		existing, err := uc.itemRepo.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			verr.Add("name", "el nombre ya está en uso")
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	now := time.Now()
	item := &entity.Item{
		ID:         uuid.New().String(),
		Name:       in.Name,
		CategoryID: in.CategoryID,
		Stock:      *in.Stock,
		Unit:       in.Unit,
		MinStock:   *in.MinStock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	resp := toItemResponse(item, cat)
	return &resp, nil
}

// Update modifica name, category_id, unit y/o min_stock (parcial). El stock
// no se toca aquí: solo lo mutan los movimientos y el ajuste directo.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	verr := &domain.ValidationError{}
	if in.Name != nil {
		if *in.Name == "" {
			verr.Add("name", "el nombre es requerido")
		} else if len(*in.Name) > 255 {
			verr.Add("name", "el nombre no puede exceder 255 caracteres")
		} else {
			existing, err := uc.itemRepo.GetByName(*in.Name)
			if err != nil {
				return nil, err
			}
			// Renombrar al propio nombre es válido
			if existing != nil && existing.ID != id {
				verr.Add("name", "el nombre ya está en uso")
			}
		}
	}
	if in.CategoryID != nil {
		cat, err := uc.catRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			verr.Add("category_id", "la categoría no existe")
		}
	}
	if in.Unit != nil && len(*in.Unit) > 50 {
		verr.Add("unit", "la unidad no puede exceder 50 caracteres")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		verr.Add("min_stock", "el stock mínimo no puede ser negativo")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	cat, err := uc.catRepo.GetByID(item.CategoryID)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item, cat)
	return &resp, nil
}

// Delete elimina el item. Se rechaza si tiene movimientos registrados, para
// no dejar huérfano el historial del libro mayor (misma regla que categorías).
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	count, err := uc.movRepo.CountByItem(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ItemInUseError{Name: item.Name, MovementsCount: count}
	}
	return uc.itemRepo.Delete(id)
}

// AdjustStock aplica un ajuste directo al saldo: "in" suma, "out" resta con
// check de suficiencia. Check y escritura van bajo el mismo lock de fila.
func (uc *ItemUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	verr := &domain.ValidationError{}
	if in.Type != AdjustIn && in.Type != AdjustOut {
		verr.Add("type", "el tipo debe ser 'in' u 'out'")
	}
	if in.Quantity < 1 {
		verr.Add("quantity", "la cantidad debe ser un entero mayor o igual a 1")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	var item *entity.Item
	var previous int
	err := uc.txRunner.Run(ctx, func(_ repository.MovementRepository, itemRepo repository.ItemRepository) error {
		var err error
		item, err = itemRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		previous = item.Stock
		newStock := item.Stock + in.Quantity
		if in.Type == AdjustOut {
			newStock = item.Stock - in.Quantity
			if newStock < 0 {
				return &domain.InsufficientStockError{Current: item.Stock, Requested: in.Quantity}
			}
		}
		item.Stock = newStock
		return itemRepo.UpdateStock(id, newStock)
	})
	if err != nil {
		return nil, err
	}

	cat, err := uc.catRepo.GetByID(item.CategoryID)
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		Item: toItemResponse(item, cat),
		StockChange: dto.StockChange{
			Type:          in.Type,
			Quantity:      in.Quantity,
			PreviousStock: previous,
			CurrentStock:  item.Stock,
		},
	}, nil
}

// withCategories adjunta la categoría a cada item (cacheadas por id).
func (uc *ItemUseCase) withCategories(items []*entity.Item) ([]dto.ItemResponse, error) {
	cats := map[string]*entity.Category{}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		if _, ok := cats[it.CategoryID]; !ok {
			c, err := uc.catRepo.GetByID(it.CategoryID)
			if err != nil {
				return nil, err
			}
			cats[it.CategoryID] = c
		}
		out = append(out, toItemResponse(it, cats[it.CategoryID]))
	}
	return out, nil
}

func toItemResponse(i *entity.Item, c *entity.Category) dto.ItemResponse {
	resp := dto.ItemResponse{
		ID:         i.ID,
		Name:       i.Name,
		CategoryID: i.CategoryID,
		Stock:      i.Stock,
		Unit:       i.Unit,
		MinStock:   i.MinStock,
		IsLowStock: i.IsLowStock(),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
	if c != nil {
		cat := toCategoryResponse(c)
		resp.Category = &cat
	}
	return resp
}
