package repositories

import (
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
// It works against any backend GORM supports; the service is wired with
// either the embedded SQLite driver or the networked PostgreSQL driver.
// Concurrency control relies on the backend's native row/file locking.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Init ensures the products table exists and seeds it only when empty.
// Calling it on every start is safe; existing data is never touched.
func (r *GORMProductRepository) Init(seed []models.Product) error {
	if err := r.db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}

	var count int64
	if err := r.db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 || len(seed) == 0 {
		return nil
	}

	now := time.Now()
	for i := range seed {
		seed[i].ID = 0 // let the backend assign ids
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
	}
	if err := r.db.Create(&seed).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	return nil
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create persists a new product and returns the stored row. The returned
// record is re-read from the database so generated fields are authoritative.
func (r *GORMProductRepository) Create(product *models.Product) (*models.Product, error) {
	now := time.Now()
	product.ID = 0
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := r.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return r.GetByID(product.ID)
}

// Update replaces all mutable fields of an existing product wholesale and
// refreshes updated_at. Returns ErrProductNotFound without writing when no
// row matched the id.
func (r *GORMProductRepository) Update(id uint, product *models.Product) (*models.Product, error) {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"category":    product.Category,
		"updated_at":  time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(id)
}

// Delete removes a product by its ID. The boolean reports whether a row
// was actually removed, so a second delete of the same id returns false.
func (r *GORMProductRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
