package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned by lookups, updates and deletes that
// matched no record. Absence is a normal outcome at this layer, not a
// storage failure; callers decide how to surface it.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
// Implementations must be safe for concurrent use; each operation is
// atomic with respect to itself but no cross-operation transaction exists.
type ProductRepository interface {
	// Init idempotently ensures the storage structure exists and seeds
	// the given products only when the store is empty. Safe to call on
	// every process start; never destroys existing data.
	Init(seed []models.Product) error

	// GetAll returns every current record in the store's natural order.
	GetAll() ([]models.Product, error)

	// GetByID returns the record with the given id, or ErrProductNotFound.
	GetByID(id uint) (*models.Product, error)

	// Create assigns a new unique id, sets both timestamps, persists the
	// record and returns the stored row re-read from the store of record.
	Create(product *models.Product) (*models.Product, error)

	// Update replaces all mutable fields (name, description, price, stock,
	// category) wholesale and refreshes updated_at. Returns the stored row,
	// or ErrProductNotFound with no write when the id matched nothing.
	Update(id uint, product *models.Product) (*models.Product, error)

	// Delete removes the record if present. The boolean reports whether a
	// record was actually removed; deleting a missing id is not an error.
	Delete(id uint) (bool, error)
}
