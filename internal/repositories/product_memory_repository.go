package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"produk/internal/models"
)

type memoryStore struct {
	mu       sync.Mutex
	products map[int]models.Product
	lastID   int
}

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Transactions hold the store lock for their whole duration and restore a
// snapshot when they fail.
type MemoryProductRepository struct {
	store *memoryStore
	inTx  bool
}

// NewMemoryProductRepository creates an empty in-memory repository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		store: &memoryStore{products: make(map[int]models.Product)},
	}
}

func (r *MemoryProductRepository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Transaction runs fn while holding the store lock.
func (r *MemoryProductRepository) Transaction(ctx context.Context, fn func(repo ProductRepository) error) (err error) {
	if r.inTx {
		return fn(r)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := make(map[int]models.Product, len(r.store.products))
	for id, p := range r.store.products {
		snapshot[id] = p
	}
	lastID := r.store.lastID
	rollback := func() {
		r.store.products = snapshot
		r.store.lastID = lastID
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(&MemoryProductRepository{store: r.store, inTx: true}); err != nil {
		rollback()
	}
	return err
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll() ([]models.Product, error) {
	defer r.lock()()

	productList := make([]models.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id int) (*models.Product, error) {
	defer r.lock()()

	product, ok := r.store.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Create adds a new product and assigns the next ID.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	defer r.lock()()

	r.store.lastID++
	product.ID = r.store.lastID
	r.store.products[product.ID] = *product
	return nil
}

// Update applies the supplied columns to an existing product.
func (r *MemoryProductRepository) Update(product *models.Product, changes map[string]interface{}) error {
	defer r.lock()()

	stored, ok := r.store.products[product.ID]
	if !ok {
		return fmt.Errorf("product with ID %d for update: %w", product.ID, ErrProductNotFound)
	}
	stored.Apply(changes)
	r.store.products[product.ID] = stored
	return nil
}

// Delete removes a product.
func (r *MemoryProductRepository) Delete(product *models.Product) error {
	defer r.lock()()

	if _, ok := r.store.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d for deletion: %w", product.ID, ErrProductNotFound)
	}
	delete(r.store.products, product.ID)
	return nil
}
