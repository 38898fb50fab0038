package testhelpers

import (
	"crypto/rand"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fitturk/backend/internal/crypto"
	"github.com/fitturk/backend/internal/database"
	"github.com/fitturk/backend/internal/models"
)

// TestPassword is the plain-text password of users made by CreateTestUser.
const TestPassword = "correct-horse-battery"

// SetupTestDB returns a migrated in-memory SQLite database private to t.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	// one connection keeps the shared-cache database free of lock errors
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// NewTestEncryptor returns an encryptor with a random key.
func NewTestEncryptor(t *testing.T) *crypto.Encryptor {
	t.Helper()
	key := make([]byte, crypto.KeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	enc, err := crypto.NewEncryptor(key)
	if err != nil {
		t.Fatalf("failed to create encryptor: %v", err)
	}
	return enc
}

// CreateTestUser inserts a user with TestPassword and an empty encrypted profile.
func CreateTestUser(t *testing.T, db *gorm.DB, enc *crypto.Encryptor, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	profile, err := enc.EncryptJSON(struct{}{})
	if err != nil {
		t.Fatalf("failed to encrypt profile: %v", err)
	}

	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Profile:      profile,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// TestDeps bundles a test database with a matching encryptor.
type TestDeps struct {
	DB  *gorm.DB
	Enc *crypto.Encryptor
}

func NewTestDeps(t *testing.T) *TestDeps {
	t.Helper()
	return &TestDeps{DB: SetupTestDB(t), Enc: NewTestEncryptor(t)}
}
