package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservice "inventory/pkg/inventory/application/service"
	"inventory/pkg/inventory/domain/model"
	"inventory/pkg/inventory/infrastructure/mysql"
)

func setup(t *testing.T) (*mysql.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mysql.NewStore(sqlx.NewDb(db, "mysql")), mock
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "category", "price", "unit", "quantity", "inventory_a", "inventory_b",
		"cost_per_unit", "image_uri", "created_at", "updated_at",
	})
}

func addProductRow(rows *sqlmock.Rows, id, inventoryA, inventoryB string) *sqlmock.Rows {
	now := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, "Flour", "Dry goods", "1.5", "kg", inventoryB, inventoryA, inventoryB, "0.2", "", now, now)
}

func TestExecuteLocksProductRows(t *testing.T) {
	ctx := context.Background()

	t.Run("Single product read", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \? FOR UPDATE$`).
			WithArgs("p-1").
			WillReturnRows(addProductRow(productRows(), "p-1", "10", "4"))
		mock.ExpectCommit()

		err := store.Execute(ctx, func(ctx context.Context, provider appservice.RepositoryProvider) error {
			product, err := provider.ProductRepository().Find(ctx, "p-1")
			if err != nil {
				return err
			}
			assert.True(t, decimal.NewFromInt(10).Equal(product.InventoryA))
			return nil
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Multi product read in id order", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin()
		rows := productRows()
		addProductRow(rows, "a", "0", "5")
		addProductRow(rows, "b", "0", "7")
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id IN \(\?, \?\) ORDER BY id FOR UPDATE$`).
			WithArgs("b", "a").
			WillReturnRows(rows)
		mock.ExpectCommit()

		err := store.Execute(ctx, func(ctx context.Context, provider appservice.RepositoryProvider) error {
			products, err := provider.ProductRepository().FindMany(ctx, []string{"b", "a"})
			if err != nil {
				return err
			}
			assert.Len(t, products, 2)
			return nil
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Reads outside a unit do not lock", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \?$`).
			WithArgs("p-1").
			WillReturnRows(addProductRow(productRows(), "p-1", "1", "1"))

		_, err := store.ProductRepository().Find(ctx, "p-1")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestExecuteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Rollback when the unit fails", func(t *testing.T) {
		store, mock := setup(t)
		failure := errors.New("unit failed")
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.Execute(ctx, func(context.Context, appservice.RepositoryProvider) error {
			return failure
		})

		assert.ErrorIs(t, err, failure)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail on begin", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

		err := store.Execute(ctx, func(context.Context, appservice.RepositoryProvider) error {
			t.Fatal("unit must not run without a transaction")
			return nil
		})

		assert.ErrorIs(t, err, model.ErrDependencyFailure)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail on commit", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

		err := store.Execute(ctx, func(context.Context, appservice.RepositoryProvider) error {
			return nil
		})

		assert.ErrorIs(t, err, model.ErrDependencyFailure)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Transfer reads under lock and writes in the same transaction", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \? FOR UPDATE$`).
			WithArgs("p-1").
			WillReturnRows(addProductRow(productRows(), "p-1", "10", "4"))
		mock.ExpectExec(`UPDATE product SET .+ WHERE id = \?`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		products := appservice.NewProductService(store, nil)
		product, err := products.Transfer(ctx, "p-1", decimal.NewFromInt(3))

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(product.InventoryA))
		assert.True(t, decimal.NewFromInt(7).Equal(product.InventoryB))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient stock rolls back without writing", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \? FOR UPDATE$`).
			WithArgs("p-1").
			WillReturnRows(addProductRow(productRows(), "p-1", "2", "4"))
		mock.ExpectRollback()

		products := appservice.NewProductService(store, nil)
		_, err := products.Transfer(ctx, "p-1", decimal.NewFromInt(3))

		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepositoryErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing row is not found", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \?`).
			WithArgs("missing").
			WillReturnRows(productRows())

		_, err := store.ProductRepository().Find(ctx, "missing")

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate id is a validation error", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectExec(`INSERT INTO product`).
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'p-1' for key 'PRIMARY'"})

		err := store.ProductRepository().Create(ctx, &model.Product{ID: "p-1", Name: "Flour", Category: "Dry goods"})

		var validationErr *model.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "id", validationErr.Field)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Driver failure is a dependency error", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectQuery(`SELECT .+ FROM product WHERE id = \?`).
			WithArgs("p-1").
			WillReturnError(errors.New("connection refused"))

		_, err := store.ProductRepository().Find(ctx, "p-1")

		assert.ErrorIs(t, err, model.ErrDependencyFailure)
		var dependencyErr *model.DependencyError
		require.ErrorAs(t, err, &dependencyErr)
		assert.Equal(t, "select product", dependencyErr.Op)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update of a vanished row is not found", func(t *testing.T) {
		store, mock := setup(t)
		mock.ExpectExec(`UPDATE product SET .+ WHERE id = \?`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.ProductRepository().Update(ctx, &model.Product{ID: "gone"})

		assert.ErrorIs(t, err, model.ErrProductNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
