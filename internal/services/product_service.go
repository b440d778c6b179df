package services

import (
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ProductService handles business logic related to products. Writes publish
// a catalog event to RabbitMQ when a client is configured; event delivery is
// best effort and never fails the request, the storage write is what counts.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
	log      zerolog.Logger
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case event publication is disabled.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client, log zerolog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
		log:      log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product and returns the stored record.
func (s *ProductService) CreateProduct(product *models.Product) (*models.Product, error) {
	created, err := s.repo.Create(product)
	if err != nil {
		return nil, err
	}
	s.publishEvent(rabbitmq.ActionProductCreated, created.ID, created)
	return created, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *ProductService) UpdateProduct(id uint, product *models.Product) (*models.Product, error) {
	updated, err := s.repo.Update(id, product)
	if err != nil {
		return nil, err
	}
	s.publishEvent(rabbitmq.ActionProductUpdated, updated.ID, updated)
	return updated, nil
}

// DeleteProduct deletes a product by its ID, reporting whether one existed.
func (s *ProductService) DeleteProduct(id uint) (bool, error) {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.publishEvent(rabbitmq.ActionProductDeleted, id, nil)
	}
	return deleted, nil
}

// publishEvent sends a catalog mutation event. Publish failures are logged
// and swallowed: the storage write has already committed.
func (s *ProductService) publishEvent(action string, productID uint, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	event := rabbitmq.ProductEvent{
		EventID:    uuid.New().String(),
		Action:     action,
		ProductID:  productID,
		Product:    product,
		OccurredAt: time.Now(),
	}
	if err := s.mqClient.PublishProductEvent(event); err != nil {
		s.log.Error().
			Err(err).
			Str("action", action).
			Uint("product_id", productID).
			Msg("failed to publish catalog event")
	}
}
