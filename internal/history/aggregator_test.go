package history_test

import (
	"testing"
	"time"

	"starsweep/internal/history"
)

var base = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func movieEvent(key, title string, watchedAt time.Time, user string) history.WatchEvent {
	return history.WatchEvent{
		MediaType: "movie",
		RatingKey: key,
		Title:     title,
		GUID:      "plex://movie/" + key,
		WatchedAt: watchedAt,
		Watched:   true,
		User:      user,
		Library:   "Movies",
	}
}

func episodeEvent(seriesKey, seriesTitle string, watchedAt time.Time, user string, watched bool) history.WatchEvent {
	return history.WatchEvent{
		MediaType:            "episode",
		RatingKey:            seriesKey + "-ep",
		GrandparentRatingKey: seriesKey,
		Title:                seriesTitle + " - Pilot",
		GrandparentTitle:     seriesTitle,
		GUID:                 "plex://episode/x",
		GrandparentGUID:      "plex://show/" + seriesKey,
		WatchedAt:            watchedAt,
		Watched:              watched,
		User:                 user,
		Library:              "TV Shows",
	}
}

func TestAggregateDedupesToMaxLastWatched(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator(nil, "full")
	records := agg.Aggregate([]history.WatchEvent{
		episodeEvent("900", "Severed", base.AddDate(0, 0, 10), "alice", true),
		episodeEvent("900", "Severed", base.AddDate(0, 0, 15), "bob", true),
		episodeEvent("900", "Severed", base.AddDate(0, 0, 12), "alice", true),
	})

	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	rec := records["900"]
	if rec == nil {
		t.Fatal("expected record keyed on the owning series")
	}
	if !rec.LastWatched.Equal(base.AddDate(0, 0, 15)) {
		t.Fatalf("expected last watched day 15, got %v", rec.LastWatched)
	}
	if rec.Kind != history.KindSeries {
		t.Fatalf("expected series kind, got %q", rec.Kind)
	}
	if rec.Title != "Severed" {
		t.Fatalf("expected series title, got %q", rec.Title)
	}
	if len(rec.Users) != 2 {
		t.Fatalf("expected two distinct users, got %v", rec.Users)
	}
}

func TestAggregateSkipsExcludedLibrariesCaseInsensitively(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator([]string{" kids "}, "full")
	event := movieEvent("1", "Cars 2", base, "alice")
	event.Library = "KIDS"

	records := agg.Aggregate([]history.WatchEvent{event})
	if len(records) != 0 {
		t.Fatalf("excluded library event must contribute to no record, got %v", records)
	}
}

func TestAggregateSkipsUnwatchedMovies(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator(nil, "full")
	event := movieEvent("2", "Abandoned", base, "alice")
	event.Watched = false

	if records := agg.Aggregate([]history.WatchEvent{event}); len(records) != 0 {
		t.Fatalf("partial movie watch must not contribute, got %v", records)
	}
}

func TestAggregateSeriesWatchModeGovernsPartialEpisodes(t *testing.T) {
	t.Parallel()

	partial := episodeEvent("901", "Half Seen", base, "alice", false)

	if records := history.NewAggregator(nil, "full").Aggregate([]history.WatchEvent{partial}); len(records) != 0 {
		t.Fatalf("full mode must drop incomplete episode watches, got %v", records)
	}
	if records := history.NewAggregator(nil, "any").Aggregate([]history.WatchEvent{partial}); len(records) != 1 {
		t.Fatalf("permissive mode must keep incomplete episode watches, got %v", records)
	}
}

func TestAggregateSkipsMalformedAndForeignKinds(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator(nil, "full")
	noGUID := movieEvent("3", "No GUID", base, "alice")
	noGUID.GUID = ""
	track := history.WatchEvent{MediaType: "track", RatingKey: "4", Title: "Song", WatchedAt: base, Watched: true}

	if records := agg.Aggregate([]history.WatchEvent{noGUID, track}); len(records) != 0 {
		t.Fatalf("malformed or non-video events must be skipped, got %v", records)
	}
}

func TestAggregateCollectsEventRatings(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator(nil, "full")
	first := movieEvent("5", "Rated", base, "alice")
	first.Rating, first.HasRating = 4, true
	second := movieEvent("5", "Rated", base.AddDate(0, 0, 1), "bob")
	second.Rating, second.HasRating = 8, true

	records := agg.Aggregate([]history.WatchEvent{first, second})
	rec := records["5"]
	if rec == nil || len(rec.Ratings) != 2 {
		t.Fatalf("expected both ratings collected, got %+v", rec)
	}
}

func TestSortedByLastWatchedIsAscending(t *testing.T) {
	t.Parallel()

	agg := history.NewAggregator(nil, "full")
	records := agg.Aggregate([]history.WatchEvent{
		movieEvent("10", "Newer", base.AddDate(0, 0, 5), "alice"),
		movieEvent("11", "Older", base, "alice"),
	})

	sorted := history.SortedByLastWatched(records)
	if len(sorted) != 2 {
		t.Fatalf("expected two records, got %d", len(sorted))
	}
	if sorted[0].Title != "Older" || sorted[1].Title != "Newer" {
		t.Fatalf("expected oldest-watched first, got %q then %q", sorted[0].Title, sorted[1].Title)
	}
}
