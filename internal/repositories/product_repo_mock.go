package repositories

import (
	"sort"
	"sync"
	"time"

	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the storage contract of the GORM implementation, including the
// monotonically increasing id counter that never reuses deleted ids.
type MockProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
	}
}

// Init seeds the store only when it is empty.
func (r *MockProductRepository) Init(seed []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.products) > 0 {
		return nil
	}
	now := time.Now()
	for i := range seed {
		p := seed[i]
		p.ID = r.nextID
		p.CreatedAt = now
		p.UpdatedAt = now
		r.products[p.ID] = p
		r.nextID++
	}
	return nil
}

// GetAll returns all products ordered by id, matching the insertion order
// a SQL backend would naturally produce.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product with a fresh id and both timestamps set.
func (r *MockProductRepository) Create(product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *product
	stored.ID = r.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.products[stored.ID] = stored
	r.nextID++
	return &stored, nil
}

// Update replaces the mutable fields of an existing product.
func (r *MockProductRepository) Update(id uint, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Stock = product.Stock
	existing.Category = product.Category
	existing.UpdatedAt = time.Now()
	r.products[id] = existing
	return &existing, nil
}

// Delete removes a product by its ID, reporting whether one existed.
func (r *MockProductRepository) Delete(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.products[id]
	if !ok {
		return false, nil
	}
	delete(r.products, id)
	return true, nil
}
