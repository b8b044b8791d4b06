package history

import "time"

// Kind classifies a canonical media record.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// Raw Tautulli media types. Episodes roll up into their owning series;
// everything else is ignored.
const (
	mediaTypeMovie   = "movie"
	mediaTypeEpisode = "episode"
)

// WatchEvent is one raw watch-history row. Events are immutable inputs; the
// aggregator collapses them into canonical records.
type WatchEvent struct {
	MediaType            string
	RatingKey            string
	GrandparentRatingKey string
	Title                string
	GrandparentTitle     string
	GUID                 string
	GrandparentGUID      string
	WatchedAt            time.Time
	Watched              bool
	User                 string
	Library              string
	Rating               float64
	HasRating            bool
}
