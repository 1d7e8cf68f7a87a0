// Package testutil wires in-memory storage for package tests.
package testutil

import (
	"decide-backend/internal/database"
	"decide-backend/internal/models"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const JWTSecret = "test_secret"

// SetupTestDB opens a private in-memory SQLite database with foreign keys
// enforced, migrates it and installs it as database.DB.
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		sqlDB.Close()
	})
	return db
}

// SetupTestRedis starts a miniredis server and installs a client for it as
// database.RedisClient.
func SetupTestRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
		mr.Close()
	})
	return mr
}

// SetupTestConfig sets the environment read by config.LoadConfig.
func SetupTestConfig(t testing.TB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", JWTSecret)
}

func CreateUser(t testing.TB, username, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Username: username, Password: string(hashed), Role: role}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func CreatePrompt(t testing.TB, slug string, order uint) models.Prompt {
	t.Helper()

	prompt := models.Prompt{Slug: slug, Order: order, Text: fmt.Sprintf("Question %s?", slug)}
	if err := database.DB.Create(&prompt).Error; err != nil {
		t.Fatalf("failed to create prompt: %v", err)
	}
	return prompt
}

// CreateDecision inserts a decision with the given creation time and
// optional quadrant.
func CreateDecision(t testing.TB, userID uint, title string, createdAt time.Time, quadrant *models.Quadrant) models.Decision {
	t.Helper()

	decision := models.Decision{UserID: userID, Title: title, CreatedAt: createdAt, Quadrant: quadrant}
	if err := database.DB.Create(&decision).Error; err != nil {
		t.Fatalf("failed to create decision: %v", err)
	}
	return decision
}

func QuadrantPtr(q models.Quadrant) *models.Quadrant {
	return &q
}
