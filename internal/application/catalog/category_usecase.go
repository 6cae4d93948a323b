package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías del catálogo.
type CategoryUseCase struct {
	catRepo  repository.CategoryRepository
	itemRepo repository.ItemRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(catRepo repository.CategoryRepository, itemRepo repository.ItemRepository) *CategoryUseCase {
	return &CategoryUseCase{catRepo: catRepo, itemRepo: itemRepo}
}

// List devuelve las categorías ordenadas por nombre, con búsqueda por
// substring y, opcionalmente, el conteo de items o los items anidados.
func (uc *CategoryUseCase) List(f dto.ListCategoriesFilter) ([]dto.CategoryResponse, error) {
	cats, err := uc.catRepo.List(repository.CategoryFilter{Search: f.Search})
	if err != nil {
		return nil, err
	}
	var counts map[string]int
	if f.WithItemsCount {
		counts, err = uc.catRepo.CountItemsGrouped()
		if err != nil {
			return nil, err
		}
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for _, c := range cats {
		resp := toCategoryResponse(c)
		if f.WithItemsCount {
			n := counts[c.ID]
			resp.ItemsCount = &n
		}
		if f.WithItems {
			items, err := uc.itemRepo.ListByCategory(c.ID)
			if err != nil {
				return nil, err
			}
			resp.Items = toItemResponses(items)
		}
		out = append(out, resp)
	}
	return out, nil
}

// GetByID devuelve una categoría, con sus items si withItems es true.
func (uc *CategoryUseCase) GetByID(id string, withItems bool) (*dto.CategoryResponse, error) {
	c, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := toCategoryResponse(c)
	if withItems {
		items, err := uc.itemRepo.ListByCategory(c.ID)
		if err != nil {
			return nil, err
		}
		resp.Items = toItemResponses(items)
	}
	return &resp, nil
}

// Create valida el nombre (requerido, <= 255, único) y persiste la categoría.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.validateName(in.Name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), Name: in.Name, CreatedAt: now, UpdatedAt: now}
	if err := uc.catRepo.Create(c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Update renombra la categoría. La unicidad excluye el propio registro, así
// que renombrar al mismo nombre es válido.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.catRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.validateName(in.Name, id); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.UpdatedAt = time.Now()
	if err := uc.catRepo.Update(c); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(c)
	return &resp, nil
}

// Delete elimina la categoría. Se rechaza con el conteo de items si aún tiene
// items que la referencian.
func (uc *CategoryUseCase) Delete(id string) error {
	c, err := uc.catRepo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	count, err := uc.catRepo.CountItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.CategoryInUseError{Name: c.Name, ItemsCount: count}
	}
	return uc.catRepo.Delete(id)
}

// validateName aplica requerido + máximo 255 + unicidad excluyendo excludeID.
func (uc *CategoryUseCase) validateName(name, excludeID string) error {
	verr := &domain.ValidationError{}
	if name == "" {
		verr.Add("name", "el nombre es requerido")
	} else if len(name) > 255 {
		verr.Add("name", "el nombre no puede exceder 255 caracteres")
	}
	if !verr.HasErrors() {
		existing, err := uc.catRepo.GetByName(name)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != excludeID {
			verr.Add("name", "el nombre ya está en uso")
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toItemResponses(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it, nil))
	}
	return out
}
