package history

import "strings"

// Aggregator collapses a raw watch-event stream into canonical records.
// Malformed events are skipped silently; the run never aborts on one row.
type Aggregator struct {
	excluded   map[string]struct{}
	seriesMode string
}

// NewAggregator builds an aggregator. Excluded library names are matched
// case-insensitively against the trimmed library label. seriesMode "full"
// drops incomplete episode watches; any other value lets them contribute.
func NewAggregator(excludedLibraries []string, seriesMode string) *Aggregator {
	excluded := make(map[string]struct{}, len(excludedLibraries))
	for _, name := range excludedLibraries {
		cleaned := strings.ToLower(strings.TrimSpace(name))
		if cleaned != "" {
			excluded[cleaned] = struct{}{}
		}
	}
	return &Aggregator{excluded: excluded, seriesMode: strings.ToLower(strings.TrimSpace(seriesMode))}
}

// Aggregate produces one Record per unique media key. Movie events key on the
// movie itself; episode events key on the owning series. Episodes never
// become separate media items.
func (a *Aggregator) Aggregate(events []WatchEvent) map[string]*Record {
	records := make(map[string]*Record)
	for _, event := range events {
		key, title, kind, guid, ok := a.identify(event)
		if !ok {
			continue
		}

		rec, seen := records[key]
		if !seen {
			rec = &Record{Key: key, Title: title, Kind: kind, GUID: guid, LastWatched: event.WatchedAt}
			records[key] = rec
		} else if event.WatchedAt.After(rec.LastWatched) {
			rec.LastWatched = event.WatchedAt
		}

		rec.addUser(event.User)
		if event.HasRating {
			rec.Ratings = append(rec.Ratings, event.Rating)
		}
	}
	return records
}

func (a *Aggregator) identify(event WatchEvent) (key, title string, kind Kind, guid string, ok bool) {
	if a.libraryExcluded(event.Library) {
		return "", "", "", "", false
	}

	switch event.MediaType {
	case mediaTypeMovie:
		if !event.Watched {
			return "", "", "", "", false
		}
		key, title, kind, guid = event.RatingKey, event.Title, KindMovie, event.GUID
	case mediaTypeEpisode:
		if a.seriesMode == "full" && !event.Watched {
			return "", "", "", "", false
		}
		key, title, kind, guid = event.GrandparentRatingKey, event.GrandparentTitle, KindSeries, event.GrandparentGUID
	default:
		return "", "", "", "", false
	}

	if key == "" || title == "" || guid == "" {
		return "", "", "", "", false
	}
	return key, title, kind, guid, true
}

func (a *Aggregator) libraryExcluded(name string) bool {
	_, excluded := a.excluded[strings.ToLower(strings.TrimSpace(name))]
	return excluded
}
