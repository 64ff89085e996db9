package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/giganoto/fast-beta/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Admin{}, &models.RevokedToken{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestRevocationStore_RecordAndContains(t *testing.T) {
	store := NewRevocationStore(newTestDB(t))

	revoked, err := store.Contains("tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if revoked {
		t.Fatal("fresh token reported as revoked")
	}

	if err := store.Record("tok-1"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	revoked, err = store.Contains("tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !revoked {
		t.Fatal("recorded token not reported as revoked")
	}

	// a different token string for the same admin is tracked
	// independently
	revoked, err = store.Contains("tok-2")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if revoked {
		t.Fatal("unrelated token reported as revoked")
	}
}

func TestRevocationStore_RecordIdempotent(t *testing.T) {
	store := NewRevocationStore(newTestDB(t))

	if err := store.Record("tok-1"); err != nil {
		t.Fatalf("first Record error: %v", err)
	}
	// double logout must succeed, not raise a uniqueness violation
	if err := store.Record("tok-1"); err != nil {
		t.Fatalf("second Record error: %v", err)
	}

	revoked, err := store.Contains("tok-1")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !revoked {
		t.Fatal("token not revoked after double record")
	}
}

func TestRevocationStore_Sweep(t *testing.T) {
	db := newTestDB(t)
	store := NewRevocationStore(db)

	old := models.RevokedToken{Token: "old-tok", CreatedAt: time.Now().Add(-48 * time.Hour)}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("insert old record: %v", err)
	}
	if err := store.Record("fresh-tok"); err != nil {
		t.Fatalf("Record error: %v", err)
	}

	n, err := store.Sweep(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Sweep error: %v", err)
	}
	if n != 1 {
		t.Fatalf("Sweep removed %d rows, want 1", n)
	}

	revoked, err := store.Contains("fresh-tok")
	if err != nil {
		t.Fatalf("Contains error: %v", err)
	}
	if !revoked {
		t.Fatal("fresh revocation swept away")
	}
}

// newMockDB returns a gorm DB backed by sqlmock, for exercising the
// store-unavailable paths.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	mock.ExpectQuery("SELECT version").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("PostgreSQL 16.0"))

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open mock db: %v", err)
	}
	return db, mock
}

func TestRevocationStore_ContainsStoreUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRevocationStore(db)

	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("connection refused"))

	_, err := store.Contains("tok-1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestRevocationStore_RecordStoreUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewRevocationStore(db)

	mock.ExpectExec("INSERT INTO").WillReturnError(errors.New("connection refused"))

	err := store.Record("tok-1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
