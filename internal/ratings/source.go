package ratings

import (
	"context"
	"errors"

	"starsweep/internal/history"
)

// ErrNoData reports that a source has no rating information for an item.
// It is distinct from transport errors: "no data" keeps the item with a
// reason, a failed lookup fails the item.
var ErrNoData = errors.New("no rating data")

// Source supplies the ratings for a canonical record on the 10-point scale.
// The variant is fixed by configuration for the whole deployment; call sites
// never inspect the upstream payload shape.
type Source interface {
	Name() string
	Ratings(ctx context.Context, rec *history.Record) ([]float64, error)
}

// CommunityClient looks up individual community ratings by the item's
// external GUID. Implemented by the plex service client.
type CommunityClient interface {
	CommunityRatings(ctx context.Context, guid string) ([]float64, error)
}

// PersonalClient reads the personal star rating from the live server item.
// The second return reports whether a rating is set at all.
type PersonalClient interface {
	PersonalRating(ctx context.Context, ratingKey string) (float64, bool, error)
}

// NewCommunitySource returns the bulk community-rating strategy.
func NewCommunitySource(client CommunityClient) Source {
	return communitySource{client: client}
}

type communitySource struct {
	client CommunityClient
}

func (communitySource) Name() string { return "community" }

func (s communitySource) Ratings(ctx context.Context, rec *history.Record) ([]float64, error) {
	values, err := s.client.CommunityRatings(ctx, rec.GUID)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNoData
	}
	return values, nil
}

// NewPersonalSource returns the personal-rating strategy. Server star
// ratings are on a 5-point scale and are doubled here so the policy always
// sees canonical 10-point values.
func NewPersonalSource(client PersonalClient) Source {
	return personalSource{client: client}
}

type personalSource struct {
	client PersonalClient
}

func (personalSource) Name() string { return "personal" }

func (s personalSource) Ratings(ctx context.Context, rec *history.Record) ([]float64, error) {
	value, present, err := s.client.PersonalRating(ctx, rec.Key)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, ErrNoData
	}
	return []float64{value * 2}, nil
}

// NewHistorySource returns the strategy that uses the per-event ratings
// already accumulated on the record during aggregation.
func NewHistorySource() Source {
	return historySource{}
}

type historySource struct{}

func (historySource) Name() string { return "history" }

func (historySource) Ratings(_ context.Context, rec *history.Record) ([]float64, error) {
	if len(rec.Ratings) == 0 {
		return nil, ErrNoData
	}
	out := make([]float64, len(rec.Ratings))
	copy(out, rec.Ratings)
	return out, nil
}
