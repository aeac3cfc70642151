package inventory_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/undo"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional real: Run trabaja sobre un
// clon y solo lo publica si fn termina sin error. Así los tests de atomicidad
// verifican rollback de verdad y no un mock que siempre confirma.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products     map[int64]*entity.Product
	transactions map[int64]*entity.StockTransaction
	details      map[int64]*entity.TransactionDetail
	logs         map[int64]*entity.ActionLog
	nextID       int64
}

func newMemStore() *memStore {
	return &memStore{
		products:     map[int64]*entity.Product{},
		transactions: map[int64]*entity.StockTransaction{},
		details:      map[int64]*entity.TransactionDetail{},
		logs:         map[int64]*entity.ActionLog{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.nextID = s.nextID
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.transactions {
		t := *v
		t.Details = nil
		c.transactions[k] = &t
	}
	for k, v := range s.details {
		d := *v
		c.details[k] = &d
	}
	for k, v := range s.logs {
		l := *v
		l.DataBefore = append([]byte(nil), v.DataBefore...)
		c.logs[k] = &l
	}
	return c
}

// seedProduct agrega un producto visible con InventoryValue derivado.
func (s *memStore) seedProduct(name string, quantity int64, price decimal.Decimal, minThreshold int64) int64 {
	id := s.id()
	s.products[id] = &entity.Product{
		ID:             id,
		Name:           name,
		Price:          price,
		Quantity:       quantity,
		MinThreshold:   minThreshold,
		InventoryValue: entity.ComputeInventoryValue(quantity, price),
		Visible:        true,
	}
	return id
}

type fakeTxRunner struct {
	store *memStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	logRepo repository.ActionLogRepository,
) error) error {
	tx := r.store.clone()
	err := fn(&fakeProductRepo{s: tx}, &fakeTransactionRepo{s: tx}, &fakeLogRepo{s: tx})
	if err != nil {
		return err
	}
	*r.store = *tx
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios fake sobre memStore
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	s *memStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(product *entity.Product) (int64, error) {
	id := r.s.id()
	p := *product
	p.ID = id
	r.s.products[id] = &p
	return id, nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(product *entity.Product) error {
	p := *product
	r.s.products[product.ID] = &p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id int64, quantity int64, inventoryValue decimal.Decimal) error {
	if p, ok := r.s.products[id]; ok {
		p.Quantity = quantity
		p.InventoryValue = inventoryValue
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Visible }, limit, offset), nil
}

func (r *fakeProductRepo) SearchByName(name string, limit, offset int) ([]*entity.Product, error) {
	needle := strings.ToLower(name)
	return r.filter(func(p *entity.Product) bool {
		return p.Visible && strings.Contains(strings.ToLower(p.Name), needle)
	}, limit, offset), nil
}

func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.Visible && p.IsLowStock() }, 0, 0), nil
}

func (r *fakeProductRepo) TotalInventoryValue() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.s.products {
		if p.Visible {
			total = total.Add(p.InventoryValue)
		}
	}
	return total, nil
}

func (r *fakeProductRepo) ExistsVisibleByCategory(categoryID int64) (bool, error) {
	for _, p := range r.s.products {
		if p.Visible && p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) SetVisible(id int64, visible bool) error {
	if p, ok := r.s.products[id]; ok {
		p.Visible = visible
	}
	return nil
}

func (r *fakeProductRepo) HardDelete(id int64) error {
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) filter(keep func(*entity.Product) bool, limit, offset int) []*entity.Product {
	var out []*entity.Product
	for _, p := range r.s.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset)
}

type fakeTransactionRepo struct {
	s *memStore
}

var _ repository.StockTransactionRepository = (*fakeTransactionRepo)(nil)

func (r *fakeTransactionRepo) CreateTransaction(t *entity.StockTransaction) (int64, error) {
	id := r.s.id()
	cp := *t
	cp.ID = id
	cp.Details = nil
	r.s.transactions[id] = &cp
	return id, nil
}

func (r *fakeTransactionRepo) AddDetail(d *entity.TransactionDetail) (int64, error) {
	id := r.s.id()
	cp := *d
	cp.ID = id
	r.s.details[id] = &cp
	return id, nil
}

func (r *fakeTransactionRepo) GetByID(id int64) (*entity.StockTransaction, error) {
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	for _, d := range r.detailsOf(id) {
		dd := *d
		cp.Details = append(cp.Details, &dd)
	}
	return &cp, nil
}

func (r *fakeTransactionRepo) List(limit, offset int) ([]*entity.StockTransaction, error) {
	return r.filter(func(*entity.StockTransaction) bool { return true }, limit, offset), nil
}

func (r *fakeTransactionRepo) ListByType(txType string, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.filter(func(t *entity.StockTransaction) bool { return t.Type == txType }, limit, offset), nil
}

func (r *fakeTransactionRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.filter(func(t *entity.StockTransaction) bool {
		return !t.DateCreated.Before(from) && !t.DateCreated.After(to)
	}, limit, offset), nil
}

func (r *fakeTransactionRepo) UpdateTotalValue(transactionID int64) error {
	t, ok := r.s.transactions[transactionID]
	if !ok {
		return nil
	}
	total := decimal.Zero
	for _, d := range r.detailsOf(transactionID) {
		total = total.Add(d.TotalPrice())
	}
	t.TotalValue = total
	return nil
}

func (r *fakeTransactionRepo) GetDetailByID(detailID int64) (*entity.TransactionDetail, error) {
	d, ok := r.s.details[detailID]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeTransactionRepo) UpdateDetail(d *entity.TransactionDetail) error {
	cp := *d
	r.s.details[d.ID] = &cp
	return nil
}

func (r *fakeTransactionRepo) RemoveDetail(detailID int64) error {
	delete(r.s.details, detailID)
	return nil
}

func (r *fakeTransactionRepo) HasDetailsForProduct(productID int64) (bool, error) {
	for _, d := range r.s.details {
		if d.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTransactionRepo) detailsOf(transactionID int64) []*entity.TransactionDetail {
	var out []*entity.TransactionDetail
	for _, d := range r.s.details {
		if d.TransactionID == transactionID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeTransactionRepo) filter(keep func(*entity.StockTransaction) bool, limit, offset int) []*entity.StockTransaction {
	var out []*entity.StockTransaction
	for _, t := range r.s.transactions {
		if keep(t) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset)
}

type fakeLogRepo struct {
	s *memStore
}

var _ repository.ActionLogRepository = (*fakeLogRepo)(nil)

func (r *fakeLogRepo) Append(log *entity.ActionLog) (int64, error) {
	id := r.s.id()
	cp := *log
	cp.ID = id
	cp.DataBefore = undo.Normalize(log.DataBefore)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	r.s.logs[id] = &cp
	return id, nil
}

func (r *fakeLogRepo) GetByID(id int64) (*entity.ActionLog, error) {
	l, ok := r.s.logs[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLogRepo) MostRecentUndoable() (*entity.ActionLog, error) {
	var best *entity.ActionLog
	for _, l := range r.s.logs {
		if !l.Visible || l.ActionType == entity.ActionUndo {
			continue
		}
		if best == nil || l.ID > best.ID {
			best = l
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (r *fakeLogRepo) MostRecentUndoableForUpdate() (*entity.ActionLog, error) {
	return r.MostRecentUndoable()
}

func (r *fakeLogRepo) Seal(id int64) error {
	if l, ok := r.s.logs[id]; ok {
		l.Visible = false
	}
	return nil
}

func (r *fakeLogRepo) List(limit, offset int) ([]*entity.ActionLog, error) {
	return r.filter(func(*entity.ActionLog) bool { return true }, limit, offset), nil
}

func (r *fakeLogRepo) ListByType(actionType string, limit, offset int) ([]*entity.ActionLog, error) {
	return r.filter(func(l *entity.ActionLog) bool { return l.ActionType == actionType }, limit, offset), nil
}

func (r *fakeLogRepo) ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.ActionLog, error) {
	return r.filter(func(l *entity.ActionLog) bool {
		return !l.CreatedAt.Before(from) && !l.CreatedAt.After(to)
	}, limit, offset), nil
}

func (r *fakeLogRepo) Count() (int64, error) {
	return int64(len(r.s.logs)), nil
}

func (r *fakeLogRepo) PurgeOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var purged int64
	for id, l := range r.s.logs {
		if l.CreatedAt.Before(cutoff) {
			delete(r.s.logs, id)
			purged++
		}
	}
	return purged, nil
}

func (r *fakeLogRepo) filter(keep func(*entity.ActionLog) bool, limit, offset int) []*entity.ActionLog {
	var out []*entity.ActionLog
	for _, l := range r.s.logs {
		if keep(l) {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset)
}

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
	nextID     int64
}

var _ repository.CategoryRepository = (*fakeCategoryRepo)(nil)

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int64]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(category *entity.Category) (int64, error) {
	r.nextID++
	cp := *category
	cp.ID = r.nextID
	r.categories[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(category *entity.Category) error {
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		if c.Visible {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *fakeCategoryRepo) SetVisible(id int64, visible bool) error {
	if c, ok := r.categories[id]; ok {
		c.Visible = visible
	}
	return nil
}

func (r *fakeCategoryRepo) HardDelete(id int64) error {
	delete(r.categories, id)
	return nil
}

func page[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
