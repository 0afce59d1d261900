package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelog/internal/entity"

	"gorm.io/gorm"
)

func seedLog(t *testing.T, repo *GormRepository, tripID uint, title string, day int, rating *int, expenses *int64) *entity.DbTravelLog {
	t.Helper()
	log := &entity.DbTravelLog{
		Title:    title,
		LogDate:  entity.NewDate(2025, time.May, day),
		TripID:   tripID,
		Rating:   rating,
		Expenses: expenses,
	}
	if err := repo.CreateTravelLog(context.Background(), log, nil, nil); err != nil {
		t.Fatalf("failed to seed log %s: %v", title, err)
	}
	return log
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestCreateTravelLogWithTagsAndPhotos(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "제주 여행", "제주도", entity.TripStatusOngoing)

	tag := &entity.DbTag{Name: "seafood", Category: entity.TagCategoryFood}
	if err := repo.CreateTag(ctx, tag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := &entity.DbTravelLog{
		Title:   "흑돼지 맛집",
		LogDate: entity.NewDate(2025, time.May, 2),
		TripID:  trip.ID,
	}
	photos := []entity.DbTravelPhoto{
		{StorageKey: "user-1/a.jpg", DisplayOrder: 1, ContentType: "image/jpeg"},
		{StorageKey: "user-1/b.jpg", DisplayOrder: 2, ContentType: "image/jpeg"},
	}
	if err := repo.CreateTravelLog(ctx, log, []uint{tag.ID}, photos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.GetTravelLogByID(ctx, log.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Trip == nil || loaded.Trip.ID != trip.ID {
		t.Fatal("expected trip to be preloaded")
	}
	if len(loaded.Photos) != 2 || loaded.Photos[0].DisplayOrder != 1 {
		t.Fatalf("expected ordered photos, got %+v", loaded.Photos)
	}

	tags, err := repo.ListTagsByTravelLog(ctx, log.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "seafood" {
		t.Fatalf("expected seafood tag, got %+v", tags)
	}
}

func TestCreateTravelLogUnknownTagRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "제주 여행", "제주도", entity.TripStatusOngoing)

	log := &entity.DbTravelLog{
		Title:   "사려니숲길",
		LogDate: entity.NewDate(2025, time.May, 3),
		TripID:  trip.ID,
	}
	photos := []entity.DbTravelPhoto{{StorageKey: "user-1/c.jpg", DisplayOrder: 1}}

	err := repo.CreateTravelLog(ctx, log, []uint{9999}, photos)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	// 事务必须整体回滚，不留半截数据
	count, err := repo.CountTravelLogsByTrip(ctx, trip.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no logs after rollback, got %d", count)
	}
	photosLeft, err := repo.ListPhotosByTravelLog(ctx, log.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photosLeft) != 0 {
		t.Fatalf("expected no photo rows after rollback, got %d", len(photosLeft))
	}
}

func TestSearchTravelLogsByUserCrossesTrips(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	alice := seedUser(t, repo, "alice")
	tripOne := seedTrip(t, repo, bob.ID, "trip-one", "Jeju", entity.TripStatusOngoing)
	tripTwo := seedTrip(t, repo, bob.ID, "trip-two", "Busan", entity.TripStatusPlanning)
	other := seedTrip(t, repo, alice.ID, "other", "Tokyo", entity.TripStatusPlanning)

	seedLog(t, repo, tripOne.ID, "day one", 1, nil, nil)
	seedLog(t, repo, tripTwo.ID, "day two", 2, nil, nil)
	seedLog(t, repo, other.ID, "not mine", 3, nil, nil)

	logs, meta, err := repo.SearchTravelLogsByUser(ctx, bob.ID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 2 || len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d/%d", len(logs), meta.Total)
	}
	for _, log := range logs {
		if log.Title == "not mine" {
			t.Fatal("another user's log leaked into the result")
		}
	}
}

func TestSearchTravelLogsFiltersAndSort(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "trip", "Jeju", entity.TripStatusOngoing)

	first := seedLog(t, repo, trip.ID, "low", 1, intPtr(2), nil)
	second := seedLog(t, repo, trip.ID, "high", 2, intPtr(5), nil)
	seedLog(t, repo, trip.ID, "unrated", 3, nil, nil)
	_ = first

	minRating := 3
	logs, meta, err := repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{MinRating: &minRating}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 1 || len(logs) != 1 || logs[0].ID != second.ID {
		t.Fatalf("expected only the high rated log, got %+v", logs)
	}

	from := entity.NewDate(2025, time.May, 2)
	to := entity.NewDate(2025, time.May, 3)
	logs, _, err = repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{
		DateFrom: &from,
		DateTo:   &to,
		SortBy:   entity.TravelLogSortLogDate,
		SortDir:  entity.SortAsc,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs in range, got %d", len(logs))
	}
	if !logs[0].LogDate.Before(logs[1].LogDate.Time) {
		t.Fatalf("expected ascending log dates, got %s then %s", logs[0].LogDate, logs[1].LogDate)
	}
}

func TestSearchTravelLogsExpenseAndMoodFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "trip", "Jeju", entity.TripStatusOngoing)

	spent := &entity.DbTravelLog{
		Title:    "market day",
		LogDate:  entity.NewDate(2025, time.May, 1),
		TripID:   trip.ID,
		Mood:     "happy",
		Expenses: int64Ptr(30000),
	}
	zero := &entity.DbTravelLog{
		Title:    "free walk",
		LogDate:  entity.NewDate(2025, time.May, 2),
		TripID:   trip.ID,
		Expenses: int64Ptr(0),
	}
	unset := &entity.DbTravelLog{
		Title:   "rest day",
		LogDate: entity.NewDate(2025, time.May, 3),
		TripID:  trip.ID,
		Mood:    "tired",
	}
	for _, log := range []*entity.DbTravelLog{spent, zero, unset} {
		if err := repo.CreateTravelLog(ctx, log, nil, nil); err != nil {
			t.Fatalf("failed to seed log %s: %v", log.Title, err)
		}
	}

	yes := true
	logs, meta, err := repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{HasExpenses: &yes}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 1 || len(logs) != 1 || logs[0].ID != spent.ID {
		t.Fatalf("expected only the paid log, got %+v", logs)
	}

	// 没花钱 = 金额为空或为 0
	no := false
	logs, meta, err = repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{HasExpenses: &no}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 2 || len(logs) != 2 {
		t.Fatalf("expected the zero and unset logs, got %+v", logs)
	}

	logs, _, err = repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{Mood: "HAP"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != spent.ID {
		t.Fatalf("expected mood substring match, got %+v", logs)
	}

	exact := entity.NewDate(2025, time.May, 2)
	logs, _, err = repo.SearchTravelLogsByTrip(ctx, trip.ID, &entity.TravelLogSearchCondition{LogDate: &exact}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != zero.ID {
		t.Fatalf("expected exact date match, got %+v", logs)
	}
}

func TestSearchTravelLogsByKeywordDeduplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "trip", "Jeju", entity.TripStatusOngoing)

	foodTag := &entity.DbTag{Name: "jeju-food", Category: entity.TagCategoryFood}
	seaTag := &entity.DbTag{Name: "jeju-sea", Category: entity.TagCategoryNature}
	if err := repo.CreateTag(ctx, foodTag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.CreateTag(ctx, seaTag); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 标题和两个标签都命中关键词，结果里也只能出现一次
	log := &entity.DbTravelLog{
		Title:   "jeju day",
		LogDate: entity.NewDate(2025, time.May, 1),
		TripID:  trip.ID,
	}
	if err := repo.CreateTravelLog(ctx, log, []uint{foodTag.ID, seaTag.ID}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, meta, err := repo.SearchTravelLogsByKeyword(ctx, bob.ID, "jeju", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 1 {
		t.Fatalf("expected deduplicated total 1, got %d", meta.Total)
	}
	if len(logs) != 1 || logs[0].ID != log.ID {
		t.Fatalf("expected single deduplicated log, got %+v", logs)
	}
}

func TestAggregatesDefaultToZero(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "empty trip", "Jeju", entity.TripStatusPlanning)

	count, err := repo.CountTravelLogsByTrip(ctx, trip.ID)
	if err != nil || count != 0 {
		t.Fatalf("expected zero count, got %d err=%v", count, err)
	}
	avg, err := repo.AverageRatingByTrip(ctx, trip.ID)
	if err != nil || avg != 0 {
		t.Fatalf("expected zero average, got %f err=%v", avg, err)
	}
	total, err := repo.TotalExpensesByTrip(ctx, trip.ID)
	if err != nil || total != 0 {
		t.Fatalf("expected zero expenses, got %d err=%v", total, err)
	}
}

func TestAggregatesByTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	trip := seedTrip(t, repo, bob.ID, "trip", "Jeju", entity.TripStatusOngoing)

	seedLog(t, repo, trip.ID, "one", 1, intPtr(4), int64Ptr(30000))
	seedLog(t, repo, trip.ID, "two", 2, intPtr(5), int64Ptr(45000))
	seedLog(t, repo, trip.ID, "unrated", 3, nil, nil)

	count, err := repo.CountTravelLogsByTrip(ctx, trip.ID)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 logs, got %d err=%v", count, err)
	}
	avg, err := repo.AverageRatingByTrip(ctx, trip.ID)
	if err != nil || avg != 4.5 {
		t.Fatalf("expected average 4.5, got %f err=%v", avg, err)
	}
	total, err := repo.TotalExpensesByTrip(ctx, trip.ID)
	if err != nil || total != 75000 {
		t.Fatalf("expected 75000 expenses, got %d err=%v", total, err)
	}

	userTotal, err := repo.TotalExpensesByUser(ctx, bob.ID)
	if err != nil || userTotal != 75000 {
		t.Fatalf("expected user total 75000, got %d err=%v", userTotal, err)
	}
}
