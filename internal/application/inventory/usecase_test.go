package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

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
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) ListByCategory(categoryID string) ([]*entity.Item, error) {
	return r.List(repository.ItemFilter{CategoryID: categoryID})
}

type fakeMovementRepo struct {
	movs map[entity.MovementKind]map[string]*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{movs: map[entity.MovementKind]map[string]*entity.StockMovement{
		entity.MovementEntry: {},
		entity.MovementExit:  {},
	}}
}

func (r *fakeMovementRepo) Create(kind entity.MovementKind, m *entity.StockMovement) error {
	cp := *m
	r.movs[kind][m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(kind entity.MovementKind, id string) (*entity.StockMovement, error) {
	m, ok := r.movs[kind][id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) List(kind entity.MovementKind) ([]*entity.StockMovement, error) {
	out := []*entity.StockMovement{}
	for _, m := range r.movs[kind] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMovementRepo) Update(kind entity.MovementKind, m *entity.StockMovement) error {
	cp := *m
	r.movs[kind][m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) Delete(kind entity.MovementKind, id string) error {
	delete(r.movs[kind], id)
	return nil
}

func (r *fakeMovementRepo) CountByItem(itemID string) (int, error) {
	n := 0
	for _, byKind := range r.movs {
		for _, m := range byKind {
			if m.ItemID == itemID {
				n++
			}
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeTxRunner ejecuta fn directamente contra los mismos fakes, sin
// transacción real. Si fn falla no hay rollback: los tests verifican que el
// use case no mutó nada ANTES de devolver el error.
type fakeTxRunner struct {
	mov  repository.MovementRepository
	item repository.ItemRepository
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.ItemRepository) error) error {
	return fn(r.mov, r.item)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testItemID = "11111111-1111-1111-1111-111111111111"
	testUserID = "22222222-2222-2222-2222-222222222222"
)

func buildMovementUseCase(item *entity.Item) (*inventory.MovementUseCase, *fakeItemRepo, *fakeMovementRepo) {
	itemRepo := newFakeItemRepo(item)
	movRepo := newFakeMovementRepo()
	userRepo := newFakeUserRepo(&entity.User{ID: testUserID, Name: "Ana", Email: "ana@example.com"})
	tx := &fakeTxRunner{mov: movRepo, item: itemRepo}
	return inventory.NewMovementUseCase(tx, movRepo, itemRepo, userRepo), itemRepo, movRepo
}

func testItem(stock, minStock int) *entity.Item {
	return &entity.Item{
		ID:         testItemID,
		Name:       "Tornillo 3mm",
		CategoryID: "33333333-3333-3333-3333-333333333333",
		Stock:      stock,
		MinStock:   minStock,
		Unit:       "pcs",
	}
}

func createReq(qty int) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		ItemID: testItemID,
		UserID: testUserID,
		Qty:    qty,
		Date:   "2026-08-30",
	}
}

func currentStock(t *testing.T, repo *fakeItemRepo) int {
	t.Helper()
	it, err := repo.GetByID(testItemID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Una entrada incrementa el saldo del item por qty.
func TestCreate_EntradaIncrementaStock(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))

	out, err := uc.Create(context.Background(), entity.MovementEntry, createReq(4))
	require.NoError(t, err)

	assert.Equal(t, 4, out.Qty)
	require.NotNil(t, out.Item)
	assert.Equal(t, 14, out.Item.Stock, "la respuesta debe reflejar el nuevo saldo")
	assert.Equal(t, 14, currentStock(t, itemRepo))
}

// Una salida con stock suficiente decrementa el saldo; cruzar el mínimo
// solo marca is_low_stock, no bloquea.
func TestCreate_SalidaDecrementaStock(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))

	out, err := uc.Create(context.Background(), entity.MovementExit, createReq(7))
	require.NoError(t, err)

	assert.Equal(t, 3, currentStock(t, itemRepo))
	require.NotNil(t, out.Item)
	assert.True(t, out.Item.IsLowStock, "3 <= 5 debe marcar stock bajo")
}

// Una salida mayor que el stock se rechaza con el saldo y lo solicitado,
// sin mutar nada.
func TestCreate_SalidaInsuficienteRechazada(t *testing.T) {
	uc, itemRepo, movRepo := buildMovementUseCase(testItem(10, 5))

	_, err := uc.Create(context.Background(), entity.MovementExit, createReq(11))
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 10, stockErr.Current)
	assert.Equal(t, 11, stockErr.Requested)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 10, currentStock(t, itemRepo), "el saldo no debe cambiar")
	movs, _ := movRepo.List(entity.MovementExit)
	assert.Empty(t, movs, "no debe persistirse el movimiento")
}

// Una salida por el stock exacto deja el saldo en cero.
func TestCreate_SalidaExactaDejaStockCero(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))

	_, err := uc.Create(context.Background(), entity.MovementExit, createReq(10))
	require.NoError(t, err)
	assert.Equal(t, 0, currentStock(t, itemRepo))
}

// qty < 1, fecha ausente o referencias inexistentes → error de validación
// por campo.
func TestCreate_ValidacionDeCampos(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))

	_, err := uc.Create(context.Background(), entity.MovementEntry, dto.CreateMovementRequest{Qty: 0})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "item_id")
	assert.Contains(t, verr.Fields, "user_id")
	assert.Contains(t, verr.Fields, "qty")
	assert.Contains(t, verr.Fields, "date")
}

func TestCreate_ItemInexistenteRechazado(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))

	in := createReq(1)
	in.ItemID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.Create(context.Background(), entity.MovementEntry, in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "item_id")
}

// La fecha acepta tanto "2006-01-02" como RFC 3339.
func TestCreate_FormatosDeFecha(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))

	in := createReq(1)
	in.Date = "2026-08-30T15:04:05Z"
	out, err := uc.Create(context.Background(), entity.MovementEntry, in)
	require.NoError(t, err)
	assert.Equal(t, 2026, out.Date.Year())
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func createdEntry(t *testing.T, uc *inventory.MovementUseCase, qty int) string {
	t.Helper()
	out, err := uc.Create(context.Background(), entity.MovementEntry, createReq(qty))
	require.NoError(t, err)
	return out.ID
}

// Subir la qty de una entrada aplica el delta al saldo.
func TestUpdate_EntradaAumentaQty(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 4) // stock 14

	newQty := 6
	out, err := uc.Update(context.Background(), entity.MovementEntry, id, dto.UpdateMovementRequest{Qty: &newQty})
	require.NoError(t, err)

	assert.Equal(t, 6, out.Qty)
	assert.Equal(t, 16, currentStock(t, itemRepo), "10 + 4 + (6-4)")
}

// Bajar la qty de una entrada por debajo de lo ya consumido se rechaza.
func TestUpdate_EntradaReducidaSinSaldoRechazada(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(0, 0))
	id := createdEntry(t, uc, 5) // stock 5

	// Consume el stock con una salida
	_, err := uc.Create(context.Background(), entity.MovementExit, createReq(4)) // stock 1
	require.NoError(t, err)

	newQty := 1 // delta -4 dejaría el stock en -3
	_, err = uc.Update(context.Background(), entity.MovementEntry, id, dto.UpdateMovementRequest{Qty: &newQty})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Current)
	assert.Equal(t, 4, stockErr.Requested)
	assert.Equal(t, 1, currentStock(t, itemRepo))
}

// Subir la qty de una salida exige stock para el delta adicional.
func TestUpdate_SalidaAumentadaConStockInsuficiente(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 0))
	out, err := uc.Create(context.Background(), entity.MovementExit, createReq(8)) // stock 2
	require.NoError(t, err)

	newQty := 12 // delta +4 > stock 2
	_, err = uc.Update(context.Background(), entity.MovementExit, out.ID, dto.UpdateMovementRequest{Qty: &newQty})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, currentStock(t, itemRepo))
}

// item_id y user_id son inmutables: si vienen en el payload se rechaza.
func TestUpdate_ItemYUsuarioInmutables(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 2)

	otro := "99999999-9999-9999-9999-999999999999"
	_, err := uc.Update(context.Background(), entity.MovementEntry, id, dto.UpdateMovementRequest{ItemID: &otro, UserID: &otro})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "item_id")
	assert.Contains(t, verr.Fields, "user_id")
}

// Actualizar solo la nota no toca el saldo.
func TestUpdate_SoloNotaNoMutaStock(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 4) // stock 14

	nota := "conteo corregido"
	out, err := uc.Update(context.Background(), entity.MovementEntry, id, dto.UpdateMovementRequest{Note: &nota})
	require.NoError(t, err)

	assert.Equal(t, "conteo corregido", out.Note)
	assert.Equal(t, 14, currentStock(t, itemRepo))
}

func TestUpdate_MovimientoInexistente(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))

	nota := "x"
	_, err := uc.Update(context.Background(), entity.MovementEntry, "no-existe", dto.UpdateMovementRequest{Note: &nota})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar una entrada revierte su efecto (resta qty).
func TestDelete_EntradaRevierteStock(t *testing.T) {
	uc, itemRepo, movRepo := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 4) // stock 14

	require.NoError(t, uc.Delete(context.Background(), entity.MovementEntry, id))

	assert.Equal(t, 10, currentStock(t, itemRepo))
	movs, _ := movRepo.List(entity.MovementEntry)
	assert.Empty(t, movs)
}

// Eliminar una salida revierte su efecto (suma qty).
func TestDelete_SalidaRevierteStock(t *testing.T) {
	uc, itemRepo, _ := buildMovementUseCase(testItem(10, 5))
	out, err := uc.Create(context.Background(), entity.MovementExit, createReq(7)) // stock 3
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), entity.MovementExit, out.ID))
	assert.Equal(t, 10, currentStock(t, itemRepo))
}

// Eliminar una entrada cuyo stock ya fue consumido dejaría el saldo negativo:
// se rechaza con el contexto del saldo.
func TestDelete_EntradaConStockConsumidoRechazada(t *testing.T) {
	uc, itemRepo, movRepo := buildMovementUseCase(testItem(0, 0))
	id := createdEntry(t, uc, 5) // stock 5

	_, err := uc.Create(context.Background(), entity.MovementExit, createReq(4)) // stock 1
	require.NoError(t, err)

	err = uc.Delete(context.Background(), entity.MovementEntry, id)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 1, stockErr.Current)
	assert.Equal(t, 5, stockErr.Requested)

	assert.Equal(t, 1, currentStock(t, itemRepo), "el saldo no debe cambiar")
	movs, _ := movRepo.List(entity.MovementEntry)
	assert.Len(t, movs, 1, "el movimiento debe seguir existiendo")
}

func TestDelete_MovimientoInexistente(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))
	err := uc.Delete(context.Background(), entity.MovementExit, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_IncluyeItemYUsuario(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 2)

	out, err := uc.GetByID(entity.MovementEntry, id)
	require.NoError(t, err)

	require.NotNil(t, out.Item)
	assert.Equal(t, "Tornillo 3mm", out.Item.Name)
	require.NotNil(t, out.User)
	assert.Equal(t, "ana@example.com", out.User.Email)
}

// Entradas y salidas viven en ledgers separados: el ID de una entrada no
// resuelve como salida.
func TestGetByID_LedgersSeparados(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(10, 5))
	id := createdEntry(t, uc, 2)

	_, err := uc.GetByID(entity.MovementExit, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DevuelveMovimientosDelTipo(t *testing.T) {
	uc, _, _ := buildMovementUseCase(testItem(100, 5))
	createdEntry(t, uc, 2)
	createdEntry(t, uc, 3)
	_, err := uc.Create(context.Background(), entity.MovementExit, createReq(1))
	require.NoError(t, err)

	entries, err := uc.List(entity.MovementEntry)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	exits, err := uc.List(entity.MovementExit)
	require.NoError(t, err)
	assert.Len(t, exits, 1)
}
