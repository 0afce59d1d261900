package entity

import "testing"

func TestParseTravelLogSortFieldFallsBack(t *testing.T) {
	cases := []struct {
		raw  string
		want TravelLogSortField
	}{
		{"createdAt", TravelLogSortCreatedAt},
		{"rating", TravelLogSortRating},
		{"expenses", TravelLogSortExpenses},
		{"logDate", TravelLogSortLogDate},
		{"title", TravelLogSortLogDate},
		{"", TravelLogSortLogDate},
	}
	for _, tc := range cases {
		if got := ParseTravelLogSortField(tc.raw); got != tc.want {
			t.Fatalf("ParseTravelLogSortField(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestCoverPhotoPicksLowestDisplayOrder(t *testing.T) {
	if CoverPhoto(nil) != nil {
		t.Fatal("expected nil cover for no photos")
	}

	photos := []DbTravelPhoto{
		{ID: 10, DisplayOrder: 2},
		{ID: 11, DisplayOrder: 1},
		{ID: 12, DisplayOrder: 3},
	}
	cover := CoverPhoto(photos)
	if cover == nil || cover.ID != 11 {
		t.Fatalf("expected photo 11 as cover, got %+v", cover)
	}
}

func TestMakeTravelLogResponseCoverURL(t *testing.T) {
	log := &DbTravelLog{
		ID:    1,
		Title: "첫째 날",
		Photos: []DbTravelPhoto{
			{ID: 1, StorageKey: "user-1/b.jpg", DisplayOrder: 2},
			{ID: 2, StorageKey: "user-1/a.jpg", DisplayOrder: 1},
		},
	}
	resp := MakeTravelLogResponse(log, nil, func(key string) string {
		return "/uploads/" + key
	})
	if resp.CoverImageURL != "/uploads/user-1/a.jpg" {
		t.Fatalf("unexpected cover url %s", resp.CoverImageURL)
	}
	if len(resp.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(resp.Photos))
	}
	if resp.Trip != nil {
		t.Fatal("expected no trip summary when trip is not loaded")
	}
}
