package catalog_test

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	cats       map[string]*entity.Category
	itemCounts map[string]int
}

func newFakeCategoryRepo(cats ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{cats: map[string]*entity.Category{}, itemCounts: map[string]int{}}
	for _, c := range cats {
		cp := *c
		r.cats[c.ID] = &cp
	}
	return r
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.cats, id)
	return nil
}

func (r *fakeCategoryRepo) List(filter repository.CategoryFilter) ([]*entity.Category, error) {
	out := []*entity.Category{}
	for _, c := range r.cats {
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) CountItems(categoryID string) (int, error) {
	return r.itemCounts[categoryID], nil
}

func (r *fakeCategoryRepo) CountItemsGrouped() (map[string]int, error) {
	out := map[string]int{}
	for k, v := range r.itemCounts {
		out[k] = v
	}
	return out, nil
}

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: map[string]*entity.Item{}}
	for _, it := range items {
		cp := *it
		r.items[it.ID] = &cp
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *fakeItemRepo) GetByName(name string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateStock(id string, stock int) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Stock = stock
	return nil
}

func (r *fakeItemRepo) Delete(id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeItemRepo) List(filter repository.ItemFilter) ([]*entity.Item, error) {
	out := []*entity.Item{}
	for _, it := range r.items {
		if filter.LowStock && !it.IsLowStock() {
			continue
		}
		if filter.CategoryID != "" && it.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) ListByCategory(categoryID string) ([]*entity.Item, error) {
	return r.List(repository.ItemFilter{CategoryID: categoryID})
}

type fakeMovementRepo struct {
	countByItem map[string]int
}

func (r *fakeMovementRepo) Create(entity.MovementKind, *entity.StockMovement) error { return nil }
func (r *fakeMovementRepo) GetByID(entity.MovementKind, string) (*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) List(entity.MovementKind) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementRepo) Update(entity.MovementKind, *entity.StockMovement) error { return nil }
func (r *fakeMovementRepo) Delete(entity.MovementKind, string) error                { return nil }
func (r *fakeMovementRepo) CountByItem(itemID string) (int, error) {
	return r.countByItem[itemID], nil
}

// fakeTxRunner ejecuta fn directamente contra los mismos fakes, sin
// transacción real.
type fakeTxRunner struct {
	mov  repository.MovementRepository
	item repository.ItemRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ItemRepository) error) error {
	return fn(r.mov, r.item)
}
