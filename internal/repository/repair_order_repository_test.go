package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestClaimMechanic_WinsWhenUnassigned(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepairOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `repair_orders` SET .* WHERE id = \\? AND \\(mechanic_id IS NULL OR mechanic_id = \\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	claimed, err := repo.ClaimMechanic(7, 3)
	require.NoError(t, err)
	require.True(t, claimed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimMechanic_LosesWhenHeldByAnother(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepairOrderRepository(db)

	// Another mechanic holds the row, so the guarded update matches nothing.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `repair_orders` SET .* WHERE id = \\? AND \\(mechanic_id IS NULL OR mechanic_id = \\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	claimed, err := repo.ClaimMechanic(7, 3)
	require.NoError(t, err)
	require.False(t, claimed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepairOrderRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `vehicles`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ok, err := repo.VehicleExists(5)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}
