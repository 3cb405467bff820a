package services

import (
	"context"
	"errors"

	"produk/internal/metrics"
	"produk/internal/models"
	"produk/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ErrProductNotFound is returned when an update or delete targets a missing row.
var ErrProductNotFound = repositories.ErrProductNotFound

// ProductService handles business logic related to products. Every method
// runs inside its own repository transaction.
type ProductService struct {
	repo    repositories.ProductRepository
	events  EventPublisher
	metrics *metrics.Metrics
	log     *logrus.Logger
}

// NewProductService creates a new ProductService. events and m may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher, m *metrics.Metrics, logger *logrus.Logger) *ProductService {
	return &ProductService{
		repo:    repo,
		events:  events,
		metrics: m,
		log:     logger,
	}
}

// ListProducts returns every stored product.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		products, err = repo.GetAll()
		return err
	})
	s.observe("list", err)
	if err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct stores a validated payload and returns the new row.
// Names are not required to be unique.
func (s *ProductService) CreateProduct(ctx context.Context, payload models.ProductCreate) (*models.Product, error) {
	product := payload.ToProduct()
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		return repo.Create(product)
	})
	s.observe("create", err)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("Product created")
	s.publish(EventProductCreated, *product)
	return product, nil
}

// UpdateProduct applies the supplied fields and returns the row as stored afterwards.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, payload models.ProductUpdate) (*models.Product, error) {
	var product *models.Product
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		existing, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if err := repo.Update(existing, payload.Changes()); err != nil {
			return err
		}
		product, err = repo.GetByID(id)
		return err
	})
	s.observe("update", err)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"product_id": id, "fields": len(payload.Changes())}).Info("Product updated")
	s.publish(EventProductUpdated, *product)
	return product, nil
}

// DeleteProduct removes a product and returns its last state.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) (*models.Product, error) {
	var product *models.Product
	err := s.repo.Transaction(ctx, func(repo repositories.ProductRepository) error {
		var err error
		product, err = repo.GetByID(id)
		if err != nil {
			return err
		}
		return repo.Delete(product)
	})
	s.observe("delete", err)
	if err != nil {
		return nil, err
	}

	s.log.WithField("product_id", id).Info("Product deleted")
	s.publish(EventProductDeleted, *product)
	return product, nil
}

func (s *ProductService) observe(operation string, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case errors.Is(err, ErrProductNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
	}
	s.metrics.ObserveOperation(operation, outcome)
}

// publish runs after commit; a failed publish never fails the request.
func (s *ProductService) publish(eventType string, product models.Product) {
	if s.events == nil {
		return
	}
	event := newProductEvent(eventType, product)
	if err := s.events.PublishEvent(eventType, event); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"event": eventType, "product_id": product.ID}).
			Warn("Failed to publish product event")
	}
}
