package sql

import (
	"context"
	"testing"

	"travelog/internal/entity"
)

func TestSearchTripsScopesToOwner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	alice := seedUser(t, repo, "alice")
	seedTrip(t, repo, bob.ID, "제주 여행", "제주도", entity.TripStatusPlanning)
	seedTrip(t, repo, alice.ID, "도쿄 여행", "도쿄", entity.TripStatusPlanning)

	trips, meta, err := repo.SearchTrips(ctx, bob.ID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 1 || len(trips) != 1 {
		t.Fatalf("expected exactly bob's trip, got %d/%d", len(trips), meta.Total)
	}
	if trips[0].Title != "제주 여행" {
		t.Fatalf("unexpected trip %s", trips[0].Title)
	}
}

func TestSearchTripsFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	seedTrip(t, repo, bob.ID, "Jeju Summer", "Jeju Island", entity.TripStatusCompleted)
	seedTrip(t, repo, bob.ID, "Busan Weekend", "Busan", entity.TripStatusPlanning)
	seedTrip(t, repo, bob.ID, "Jeju Winter", "Jeju Island", entity.TripStatusPlanning)

	status := entity.TripStatusPlanning
	trips, meta, err := repo.SearchTrips(ctx, bob.ID, &entity.TripSearchCondition{
		Status:      &status,
		Destination: "jeju",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 1 || len(trips) != 1 {
		t.Fatalf("expected 1 match, got %d/%d", len(trips), meta.Total)
	}
	if trips[0].Title != "Jeju Winter" {
		t.Fatalf("unexpected trip %s", trips[0].Title)
	}

	// 标题子串匹配，大小写不敏感
	trips, meta, err = repo.SearchTrips(ctx, bob.ID, &entity.TripSearchCondition{Title: "JEJU"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != 2 || len(trips) != 2 {
		t.Fatalf("expected 2 matches, got %d/%d", len(trips), meta.Total)
	}
}

func TestSearchTripsSortAscending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	seedTrip(t, repo, bob.ID, "b-trip", "B", entity.TripStatusPlanning)
	seedTrip(t, repo, bob.ID, "a-trip", "A", entity.TripStatusPlanning)
	seedTrip(t, repo, bob.ID, "c-trip", "C", entity.TripStatusPlanning)

	trips, _, err := repo.SearchTrips(ctx, bob.ID, &entity.TripSearchCondition{
		SortBy:  entity.TripSortTitle,
		SortDir: entity.SortAsc,
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	titles := []string{trips[0].Title, trips[1].Title, trips[2].Title}
	if titles[0] != "a-trip" || titles[1] != "b-trip" || titles[2] != "c-trip" {
		t.Fatalf("unexpected order %v", titles)
	}
}

func TestSearchTripsPaginationInvariant(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	bob := seedUser(t, repo, "bob")
	titles := []string{"t1", "t2", "t3", "t4", "t5"}
	for _, title := range titles {
		seedTrip(t, repo, bob.ID, title, "anywhere", entity.TripStatusPlanning)
	}

	cond := &entity.TripSearchCondition{SortBy: entity.TripSortTitle, SortDir: entity.SortAsc}

	all, meta, err := repo.SearchTrips(ctx, bob.ID, cond, &entity.BaseParams{Page: 0, PageSize: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Total != int64(len(all)) {
		t.Fatalf("count %d must match unpaged result length %d", meta.Total, len(all))
	}

	// 页码从 0 开始，各页拼起来要等于整个结果集
	var paged []entity.DbTrip
	for page := 0; page < 3; page++ {
		chunk, _, err := repo.SearchTrips(ctx, bob.ID, cond, &entity.BaseParams{Page: page, PageSize: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		paged = append(paged, chunk...)
	}
	if len(paged) != len(all) {
		t.Fatalf("expected %d concatenated rows, got %d", len(all), len(paged))
	}
	for i := range all {
		if all[i].ID != paged[i].ID {
			t.Fatalf("page concatenation mismatch at %d: %d vs %d", i, all[i].ID, paged[i].ID)
		}
	}
}
