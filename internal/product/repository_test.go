package product

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{
		"id", "name", "base_price", "sale_price", "description",
		"category", "image_url", "alt_text", "in_stock", "low_stock",
	}

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(cols).
			AddRow(1, "Mug", 12.5, 0.0, "A mug", "Kitchen", "mug.jpg", "a mug", true, nil).
			AddRow(2, "Pan", 40.0, 35.0, "A pan", "Kitchen", nil, nil, true, 4)

		mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(rows)

		products, err := repo.ListActive(context.Background())

		assert.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Mug", products[0].Name)
		assert.Nil(t, products[0].LowStockAlert)
		require.NotNil(t, products[1].LowStockAlert)
		assert.Equal(t, 4, *products[1].LowStockAlert)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products").
			WillReturnError(errors.New("db error"))

		_, err := repo.ListActive(context.Background())
		assert.Error(t, err)
	})
}

func TestRepository_GetSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	cols := []string{"id", "base_price", "sale_price", "available_quantity"}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(42, 100.0, 80.0, 2))

		s, err := repo.GetSnapshot(context.Background(), 42)

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, uint(42), s.ProductID)
		assert.Equal(t, 2, s.AvailableQuantity)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products").
			WithArgs(uint(99)).
			WillReturnRows(sqlmock.NewRows(cols))

		s, err := repo.GetSnapshot(context.Background(), 99)

		assert.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM products").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetSnapshot(context.Background(), 1)
		assert.Error(t, err)
	})
}
