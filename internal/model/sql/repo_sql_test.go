package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"travelog/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo 在临时目录里开一个 SQLite 库，配置与生产工厂保持一致
func newTestRepo(t *testing.T) *GormRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&entity.DbUser{},
		&entity.DbTrip{},
		&entity.DbTravelLog{},
		&entity.DbTag{},
		&entity.DbTravelLogTag{},
		&entity.DbTravelPhoto{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewGormRepository(db)
}

func seedUser(t *testing.T, repo *GormRepository, username string) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
	}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedTrip(t *testing.T, repo *GormRepository, userID uint, title, destination string, status entity.TripStatus) *entity.DbTrip {
	t.Helper()
	trip := &entity.DbTrip{
		Title:       title,
		StartDate:   entity.NewDate(2025, time.May, 1),
		EndDate:     entity.NewDate(2025, time.May, 5),
		Status:      status,
		Destination: destination,
		UserID:      userID,
	}
	if err := repo.CreateTrip(context.Background(), trip); err != nil {
		t.Fatalf("failed to seed trip %s: %v", title, err)
	}
	return trip
}

func TestCreateUserDuplicateTranslates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, repo, "bob")

	dup := &entity.DbUser{Username: "bob", Email: "other@example.com", PasswordHash: "x"}
	err := repo.CreateUser(ctx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestUserLookupsAreCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedUser(t, repo, "bob")

	user, err := repo.GetUserByUsername(ctx, "BOB")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("expected bob, got %s", user.Username)
	}

	exists, err := repo.ExistsUserByEmail(ctx, "Bob@Example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected email lookup to ignore case")
	}
}

func TestTagExistsByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tag := &entity.DbTag{Name: "해산물", Category: entity.TagCategoryFood}
	if err := repo.CreateTag(ctx, tag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := repo.TagExistsByName(ctx, "해산물")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected tag to exist")
	}

	exists, err = repo.TagExistsByName(ctx, "등산")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected missing tag to not exist")
	}
}

func TestSearchTagsByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"seafood", "street-food", "hiking"} {
		if err := repo.CreateTag(ctx, &entity.DbTag{Name: name, Category: entity.TagCategoryFood}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tags, err := repo.SearchTagsByName(ctx, "FOOD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(tags))
	}

	tags, err = repo.SearchTagsByName(ctx, "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("expected blank keyword to match nothing, got %d", len(tags))
	}
}
