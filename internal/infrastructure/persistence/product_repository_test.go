package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aguulga/backend/internal/domain/catalog"
	"github.com/aguulga/backend/internal/domain/shared"
)

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormProductRepository(gormDB), mock, mockDB
}

func productColumns() []string {
	return []string{"id", "version", "name_mongolian", "name_english", "product_code", "barcode",
		"price_retail", "stock_quantity", "category_id", "is_active"}
}

func TestGormProductRepository_FindByCodeOrBarcode(t *testing.T) {
	t.Run("matches on either identifier", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, 1, "Сүү 1л", "Milk 1L", "MLK-001", "6291041500213",
				decimal.NewFromInt(4500), decimal.NewFromInt(24), nil, true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE \(product_code = \$1 OR barcode = \$2\) ORDER BY .* LIMIT .*`).
			WithArgs("MLK-001", "0000000", 1).
			WillReturnRows(rows)

		product, err := repo.FindByCodeOrBarcode(context.Background(), "MLK-001", "0000000")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, "MLK-001", product.ProductCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ignores empty product code", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, 1, "Сүү 1л", "Milk 1L", "", "6291041500213",
				decimal.NewFromInt(4500), decimal.NewFromInt(24), nil, true)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE barcode = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("6291041500213", 1).
			WillReturnRows(rows)

		product, err := repo.FindByCodeOrBarcode(context.Background(), "", "6291041500213")

		assert.NoError(t, err)
		require.NotNil(t, product)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("both identifiers empty is not found without a query", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := repo.FindByCodeOrBarcode(context.Background(), "", "")

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match maps to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE \(product_code = \$1 OR barcode = \$2\) ORDER BY .* LIMIT .*`).
			WithArgs("NOPE", "NOPE", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByCodeOrBarcode(context.Background(), "NOPE", "NOPE")

		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_Save(t *testing.T) {
	t.Run("updates an existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewProduct("Сүү 1л", "Milk 1L", "MLK-001", "6291041500213")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "products" SET .+ WHERE "id" = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Save(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("surfaces store errors", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewProduct("Сүү 1л", "Milk 1L", "MLK-001", "6291041500213")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "products" SET .+ WHERE "id" = \$\d+`).
			WillReturnError(sql.ErrConnDone)

		assert.Error(t, repo.Save(context.Background(), product))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
