package beer

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestBeerRepository_SumQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "beers" WHERE user_id = \$1`).
		WithArgs(uint(4)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(8)))

	total, err := repo.SumQuantity(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeerRepository_UpdateQuantity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectExec(`UPDATE "beers" SET "quantity"=\$1 WHERE id = \$2`).
		WithArgs(6, uint(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateQuantity(context.Background(), 3, 6))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeerRepository_GetOwnedBeerForUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBeerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "beers" WHERE id = \$1 AND user_id = \$2 ORDER BY "beers"."id" LIMIT .+ FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetOwnedBeerForUpdate(context.Background(), 1, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
