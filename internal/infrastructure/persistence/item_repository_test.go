package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/flower8718/backend/internal/domain/shared"
)

// newMockDB creates a GORM connection backed by sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
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

func TestGormItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		rows := sqlmock.NewRows([]string{"id", "item_code", "name", "variety", "category", "tax_rate", "sort_order", "is_active"}).
			AddRow(1, "1234", "バラ", "赤", "切花", "0.10", 99, true)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE .* LIMIT .*`).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), 1)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "1234", item.ItemCode)
		assert.Equal(t, "バラ", item.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing item", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE .* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), 42)

		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindByCode(t *testing.T) {
	t.Run("finds item by code", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		rows := sqlmock.NewRows([]string{"id", "item_code", "name"}).
			AddRow(7, "5678", "カーネーション")

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE item_code = \$1 .* LIMIT .*`).
			WillReturnRows(rows)

		item, err := repo.FindByCode(context.Background(), "5678")

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, uint(7), item.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_AllCodes(t *testing.T) {
	t.Run("returns assigned codes", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(db)

		rows := sqlmock.NewRows([]string{"item_code"}).
			AddRow("1000").
			AddRow("2345")

		mock.ExpectQuery(`SELECT "item_code" FROM "items" WHERE item_code <> ''`).
			WillReturnRows(rows)

		codes, err := repo.AllCodes(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []string{"1000", "2345"}, codes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRepository_Sums(t *testing.T) {
	t.Run("sums arrivals with COALESCE", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryRepository(db)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "arrivals" WHERE item_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(130))

		total, err := repo.SumArrivedQuantity(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, 130, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty transfer history sums to zero", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInventoryRepository(db)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "transfers" WHERE item_id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

		total, err := repo.SumTransferredQuantity(context.Background(), 3)

		assert.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
