package services_test

import (
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Init(seed []models.Product) error {
	args := m.Called(seed)
	return args.Error(0)
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) (*models.Product, error) {
	args := m.Called(product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(id uint, product *models.Product) (*models.Product, error) {
	args := m.Called(id, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func newProductService(repo repositories.ProductRepository) *services.ProductService {
	return services.NewProductService(repo, nil, zerolog.Nop())
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Product A", Price: 10.0, Stock: 100},
		{ID: 2, Name: "Product B", Price: 20.0, Stock: 50},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Stock: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.GetProductByID(99)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	newProduct := &models.Product{Name: "New Product", Price: 50.0, Stock: 20}
	storedProduct := &models.Product{ID: 5, Name: "New Product", Price: 50.0, Stock: 20}

	// Test successful creation: the stored record comes back, not the input echo
	mockRepo.On("Create", newProduct).Return(storedProduct, nil).Once()
	created, err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	assert.Equal(t, storedProduct, created)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(nil, fmt.Errorf("database error")).Once()
	created, err = service.CreateProduct(newProduct)
	assert.Nil(t, created)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	fields := &models.Product{Name: "Product A Updated", Price: 12.0, Stock: 95}
	storedProduct := &models.Product{ID: 1, Name: "Product A Updated", Price: 12.0, Stock: 95}

	// Test successful update
	mockRepo.On("Update", uint(1), fields).Return(storedProduct, nil).Once()
	updated, err := service.UpdateProduct(1, fields)
	assert.NoError(t, err)
	assert.Equal(t, storedProduct, updated)
	mockRepo.AssertExpectations(t)

	// Test update on a nonexistent id
	mockRepo.On("Update", uint(99), fields).Return(nil, repositories.ErrProductNotFound).Once()
	updated, err = service.UpdateProduct(99, fields)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := newProductService(mockRepo)

	// Test successful deletion
	mockRepo.On("Delete", uint(1)).Return(true, nil).Once()
	deleted, err := service.DeleteProduct(1)
	assert.NoError(t, err)
	assert.True(t, deleted)
	mockRepo.AssertExpectations(t)

	// Deleting a missing id is not an error, it just reports false
	mockRepo.On("Delete", uint(99)).Return(false, nil).Once()
	deleted, err = service.DeleteProduct(99)
	assert.NoError(t, err)
	assert.False(t, deleted)
	mockRepo.AssertExpectations(t)
}
