package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"produk/internal/config"
	"produk/internal/database"
	"produk/internal/models"
	"produk/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func newGORMRepository(t *testing.T) repositories.ProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.Open(config.DriverSQLite, dsn, gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return repositories.NewGORMProductRepository(db)
}

// forEachRepository runs the same contract test against every implementation.
func forEachRepository(t *testing.T, test func(t *testing.T, repo repositories.ProductRepository)) {
	t.Run("gorm", func(t *testing.T) { test(t, newGORMRepository(t)) })
	t.Run("memory", func(t *testing.T) { test(t, repositories.NewMemoryProductRepository()) })
}

func seed(t *testing.T, repo repositories.ProductRepository) []models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "mouse", Description: "It's a mouse", Category: models.Category1, Quantity: 12},
		{Name: "keyboard", Description: "It's a keyboard", Category: models.Category2, Quantity: 13},
		{Name: "phone", Description: "It's a phone", Category: models.Category3, Quantity: 14},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
	return products
}

func TestProductRepository_CreateAndGetAll(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		seeded := seed(t, repo)
		for _, p := range seeded {
			assert.NotZero(t, p.ID)
		}

		all, err = repo.GetAll()
		require.NoError(t, err)
		assert.Equal(t, seeded, all)
	})
}

func TestProductRepository_DuplicateNamesAllowed(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		a := models.Product{Name: "mouse", Description: "first", Category: models.Category1, Quantity: 1}
		b := models.Product{Name: "mouse", Description: "second", Category: models.Category1, Quantity: 2}
		require.NoError(t, repo.Create(&a))
		require.NoError(t, repo.Create(&b))
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestProductRepository_GetByID(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		seeded := seed(t, repo)

		product, err := repo.GetByID(seeded[1].ID)
		require.NoError(t, err)
		assert.Equal(t, seeded[1], *product)

		_, err = repo.GetByID(999)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_UpdateOnlyTouchesSuppliedColumns(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		seeded := seed(t, repo)
		target := seeded[2]

		require.NoError(t, repo.Update(&target, map[string]interface{}{"name": "zaki"}))

		product, err := repo.GetByID(target.ID)
		require.NoError(t, err)
		assert.Equal(t, "zaki", product.Name)
		assert.Equal(t, "It's a phone", product.Description)
		assert.Equal(t, models.Category3, product.Category)
		assert.Equal(t, 14, product.Quantity)

		require.NoError(t, repo.Update(&target, map[string]interface{}{"category": models.Category1, "quantity": 0}))
		product, err = repo.GetByID(target.ID)
		require.NoError(t, err)
		assert.Equal(t, models.Category1, product.Category)
		assert.Equal(t, 0, product.Quantity)

		err = repo.Update(&models.Product{ID: 999}, map[string]interface{}{"name": "ghost"})
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	})
}

func TestProductRepository_Delete(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		seeded := seed(t, repo)

		require.NoError(t, repo.Delete(&seeded[0]))
		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.Len(t, all, len(seeded)-1)

		_, err = repo.GetByID(seeded[0].ID)
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		assert.ErrorIs(t, repo.Delete(&seeded[0]), repositories.ErrProductNotFound)
	})
}

func TestProductRepository_TransactionCommits(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		var created models.Product
		err := repo.Transaction(context.Background(), func(tx repositories.ProductRepository) error {
			created = models.Product{Name: "mouse", Description: "It's a mouse", Category: models.Category1, Quantity: 1}
			return tx.Create(&created)
		})
		require.NoError(t, err)

		product, err := repo.GetByID(created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, *product)
	})
}

func TestProductRepository_TransactionRollsBackOnError(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		seeded := seed(t, repo)
		boom := errors.New("boom")

		err := repo.Transaction(context.Background(), func(tx repositories.ProductRepository) error {
			if err := tx.Create(&models.Product{Name: "ghost", Description: "never kept", Category: models.Category2, Quantity: 1}); err != nil {
				return err
			}
			if err := tx.Delete(&seeded[0]); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.Equal(t, seeded, all)
	})
}

func TestProductRepository_TransactionRollsBackOnPanic(t *testing.T) {
	forEachRepository(t, func(t *testing.T, repo repositories.ProductRepository) {
		assert.Panics(t, func() {
			_ = repo.Transaction(context.Background(), func(tx repositories.ProductRepository) error {
				_ = tx.Create(&models.Product{Name: "ghost", Description: "never kept", Category: models.Category2, Quantity: 1})
				panic("handler blew up")
			})
		})

		all, err := repo.GetAll()
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
