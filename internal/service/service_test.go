package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"travelog/internal/apperr"
	"travelog/internal/config"
	"travelog/internal/entity"
	"travelog/internal/model"
	"travelog/internal/storage"
)

type testEnv struct {
	repo       model.Repository
	users      *UserService
	trips      *TripService
	travelLogs *TravelLogService
	tags       *TagService
}

// newTestEnv 用生产工厂开一个临时 SQLite 库，存储走本地临时目录
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		DBType: "sqlite",
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	}
	repo, err := model.InitRepository(&cfg)
	if err != nil {
		t.Fatalf("failed to init repository: %v", err)
	}

	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init storage: %v", err)
	}

	resolveURL := func(key string) string { return "/uploads/" + key }

	return &testEnv{
		repo:       repo,
		users:      NewUserService(repo),
		trips:      NewTripService(repo),
		travelLogs: NewTravelLogService(repo, store, resolveURL),
		tags:       NewTagService(repo),
	}
}

func (e *testEnv) signup(t *testing.T, username string) *entity.DbUser {
	t.Helper()
	user, err := e.users.Signup(context.Background(), entity.SignUpRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("failed to sign up %s: %v", username, err)
	}
	return user
}

func (e *testEnv) createTrip(t *testing.T, userID uint, title string) *entity.DbTrip {
	t.Helper()
	trip, err := e.trips.CreateTrip(context.Background(), userID, entity.TripCreateRequest{
		Title:       title,
		StartDate:   entity.NewDate(2025, time.May, 1),
		EndDate:     entity.NewDate(2025, time.May, 5),
		Destination: "제주도",
	})
	if err != nil {
		t.Fatalf("failed to create trip %s: %v", title, err)
	}
	return trip
}

func TestSignupAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.signup(t, "bob")
	if user.PasswordHash == "secret123" {
		t.Fatal("password must not be stored in plaintext")
	}

	byUsername, err := env.users.Authenticate(ctx, "bob", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byUsername.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, byUsername.ID)
	}

	byEmail, err := env.users.Authenticate(ctx, "bob@example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, byEmail.ID)
	}

	if _, err := env.users.Authenticate(ctx, "bob", "wrong"); !errors.Is(err, apperr.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if _, err := env.users.Authenticate(ctx, "nobody", "secret123"); !errors.Is(err, apperr.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSignupRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.signup(t, "bob")

	_, err := env.users.Signup(ctx, entity.SignUpRequest{
		Username: "bob",
		Email:    "new@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	_, err = env.users.Signup(ctx, entity.SignUpRequest{
		Username: "bobby",
		Email:    "bob@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUsernameAndEmailExistence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.signup(t, "bob")

	// true 表示已被占用
	exists, err := env.users.UsernameExists(ctx, "bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected taken username to be reported as existing")
	}

	exists, err = env.users.EmailExists(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected taken email to be reported as existing")
	}

	exists, err = env.users.EmailExists(ctx, "free@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected free email to be reported as not existing")
	}
}

func TestSignupRaceReportsCollidingField(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.signup(t, "bob")

	// 唯一索引兜住并发注册后，错误要指出撞上的是哪个字段
	if err := env.users.duplicateSignupError(ctx, "bob", "other@example.com"); !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if err := env.users.duplicateSignupError(ctx, "other", "bob@example.com"); !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if err := env.users.duplicateSignupError(ctx, "other", "other@example.com"); !errors.Is(err, apperr.ErrDuplicateResource) {
		t.Fatalf("expected ErrDuplicateResource fallback, got %v", err)
	}
}

func TestCreateTripDefaultsToPlanning(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup(t, "bob")

	trip := env.createTrip(t, user.ID, "제주 여행")
	if trip.Status != entity.TripStatusPlanning {
		t.Fatalf("expected PLANNING default, got %s", trip.Status)
	}
}

func TestCreateTripValidatesDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.signup(t, "bob")

	_, err := env.trips.CreateTrip(ctx, user.ID, entity.TripCreateRequest{
		Title:     "backwards",
		StartDate: entity.NewDate(2025, time.May, 5),
		EndDate:   entity.NewDate(2025, time.May, 1),
	})
	appErr, ok := apperr.From(err)
	if !ok || appErr.Code != apperr.ErrInvalidInput.Code {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}

	_, err = env.trips.CreateTrip(ctx, user.ID, entity.TripCreateRequest{
		Title:     "bad status",
		StartDate: entity.NewDate(2025, time.May, 1),
		EndDate:   entity.NewDate(2025, time.May, 5),
		Status:    "DELAYED",
	})
	if appErr, ok := apperr.From(err); !ok || appErr.Code != apperr.ErrInvalidInput.Code {
		t.Fatalf("expected INVALID_INPUT for unknown status, got %v", err)
	}
}

func TestGetTripOwnershipPolicy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.signup(t, "bob")
	alice := env.signup(t, "alice")
	trip := env.createTrip(t, bob.ID, "제주 여행")

	// 他人的旅行回 403，暴露 id 存在这一事实是刻意的
	if _, err := env.trips.GetTrip(ctx, alice.ID, trip.ID); !errors.Is(err, apperr.ErrTripAccessDenied) {
		t.Fatalf("expected ErrTripAccessDenied, got %v", err)
	}
	// 不存在的旅行回 404
	if _, err := env.trips.GetTrip(ctx, bob.ID, 9999); !errors.Is(err, apperr.ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestGetTripIncludesStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bob := env.signup(t, "bob")
	trip := env.createTrip(t, bob.ID, "제주 여행")

	rating := 4
	expenses := int64(30000)
	_, err := env.travelLogs.CreateTravelLog(ctx, bob.ID, trip.ID, entity.TravelLogCreateRequest{
		Title:    "성산일출봉",
		LogDate:  entity.NewDate(2025, time.May, 2),
		Rating:   &rating,
		Expenses: &expenses,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	detail, err := env.trips.GetTrip(ctx, bob.ID, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Stats.LogCount != 1 || detail.Stats.AverageRating != 4 || detail.Stats.TotalExpenses != 30000 {
		t.Fatalf("unexpected stats %+v", detail.Stats)
	}
	if detail.Duration != 5 {
		t.Fatalf("expected inclusive duration 5, got %d", detail.Duration)
	}
}
