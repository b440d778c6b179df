package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestRepo opens a uniquely-named shared in-memory SQLite database so
// each test gets an isolated store that survives connection pooling.
func newTestRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)

	repo := repositories.NewGORMProductRepository(db)
	assert.NoError(t, repo.Init(nil))
	return repo
}

func TestGORMProductRepository_CreateRoundTrip(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(&models.Product{
		Name:        "Laptop",
		Description: "High performance laptop",
		Price:       999.99,
		Stock:       10,
		Category:    "Computers",
	})
	assert.NoError(t, err)
	assert.Greater(t, created.ID, uint(0))
	assert.Equal(t, "Laptop", created.Name)
	assert.Equal(t, 999.99, created.Price)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	fetched, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Price, fetched.Price)
	assert.Equal(t, created.Stock, fetched.Stock)
	assert.Equal(t, created.Category, fetched.Category)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(fetched.UpdatedAt))
}

func TestGORMProductRepository_GetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	product, err := repo.GetByID(12345)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_Update(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(&models.Product{Name: "Monitor", Price: 200.00, Stock: 4, Category: "Monitors"})
	assert.NoError(t, err)

	// Guarantee a visibly later update timestamp.
	time.Sleep(10 * time.Millisecond)

	updated, err := repo.Update(created.ID, &models.Product{
		Name:        "Monitor 27\"",
		Description: "Now with a panel size",
		Price:       249.99,
		Stock:       7,
		Category:    "Displays",
	})
	assert.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Monitor 27\"", updated.Name)
	assert.Equal(t, "Now with a panel size", updated.Description)
	assert.Equal(t, 249.99, updated.Price)
	assert.Equal(t, 7, updated.Stock)
	assert.Equal(t, "Displays", updated.Category)

	// created_at never changes; updated_at strictly increases.
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	fetched, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, updated.Name, fetched.Name)
	assert.Equal(t, updated.Price, fetched.Price)
}

func TestGORMProductRepository_UpdateNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Create(&models.Product{Name: "Keyboard", Price: 75.00, Stock: 25})
	assert.NoError(t, err)

	before, err := repo.GetAll()
	assert.NoError(t, err)

	updated, err := repo.Update(9999, &models.Product{Name: "Ghost", Price: 1.00})
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	// A failed update writes nothing.
	after, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Equal(t, len(before), len(after))
	assert.Equal(t, before, after)
}

func TestGORMProductRepository_DeleteIdempotence(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(&models.Product{Name: "Mouse", Price: 25.00, Stock: 50})
	assert.NoError(t, err)

	deleted, err := repo.Delete(created.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// Second delete of the same id is safe and reports false.
	deleted, err = repo.Delete(created.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)

	product, err := repo.GetByID(created.ID)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_IDsAreMonotonicAndNotReused(t *testing.T) {
	repo := newTestRepo(t)

	first, err := repo.Create(&models.Product{Name: "First", Price: 1.00})
	assert.NoError(t, err)
	second, err := repo.Create(&models.Product{Name: "Second", Price: 2.00})
	assert.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	deleted, err := repo.Delete(second.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// The deleted id must not be handed out again.
	third, err := repo.Create(&models.Product{Name: "Third", Price: 3.00})
	assert.NoError(t, err)
	assert.Greater(t, third.ID, second.ID)
}

func TestGORMProductRepository_InitSeedsOnlyWhenEmpty(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	repo := repositories.NewGORMProductRepository(db)

	seed := []models.Product{
		{Name: "Seeded A", Price: 10.00, Stock: 1, Category: "Seed"},
		{Name: "Seeded B", Price: 20.00, Stock: 2, Category: "Seed"},
	}
	assert.NoError(t, repo.Init(seed))

	products, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// A second Init must not duplicate the seed.
	assert.NoError(t, repo.Init(seed))
	products, err = repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	// Nor may Init touch a store that already holds data.
	created, err := repo.Create(&models.Product{Name: "Manual", Price: 5.00})
	assert.NoError(t, err)
	assert.NoError(t, repo.Init(seed))
	products, err = repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, products, 3)
	found, err := repo.GetByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Manual", found.Name)
}
