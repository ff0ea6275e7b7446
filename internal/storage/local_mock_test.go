package storage_test

import (
	"testing"

	"github.com/sebaxchen/lookSocial/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestNewLocal_MigrationFailure(t *testing.T) {
	// Arrange: the connection refuses the schema queries.
	gormDB, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM information_schema\.tables`).
		WillReturnError(assert.AnError)

	// Act
	local, err := storage.NewLocal(gormDB)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, local)
}
