package repositories

import (
	"context"
	"errors"

	"produk/internal/models"
)

// ErrProductNotFound is returned when no row matches the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (*models.Product, error)
	Create(product *models.Product) error
	// Update writes the given column values to the row identified by product.ID.
	Update(product *models.Product, changes map[string]interface{}) error
	Delete(product *models.Product) error
	// Transaction runs fn against a repository bound to a single unit of work.
	// The work is committed when fn returns nil and rolled back when it
	// returns an error or panics.
	Transaction(ctx context.Context, fn func(repo ProductRepository) error) error
}
