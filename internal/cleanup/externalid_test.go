package cleanup_test

import (
	"testing"

	"starsweep/internal/cleanup"
)

func TestParseExternalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		guid     string
		provider string
		id       string
		ok       bool
	}{
		{"com.plexapp.agents.themoviedb://603?lang=en", "tmdb", "603", true},
		{"tmdb://603", "tmdb", "603", true},
		{"com.plexapp.agents.thetvdb://371980?lang=en", "tvdb", "371980", true},
		{"tvdb://371980", "tvdb", "371980", true},
		{"plex://movie/5d776b59ad5437001f79c6f8", "", "", false},
		{"local://1234", "", "", false},
		{"tmdb://", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range tests {
		provider, id, ok := cleanup.ParseExternalID(tc.guid)
		if provider != tc.provider || id != tc.id || ok != tc.ok {
			t.Errorf("ParseExternalID(%q) = (%q,%q,%v), want (%q,%q,%v)",
				tc.guid, provider, id, ok, tc.provider, tc.id, tc.ok)
		}
	}
}
