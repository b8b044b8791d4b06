package cleanup

import "strings"

// External id providers the dispatcher can route on.
const (
	ProviderTMDB = "tmdb"
	ProviderTVDB = "tvdb"
)

// ParseExternalID extracts the cross-reference provider and id from an agent
// GUID. Both legacy agent GUIDs (com.plexapp.agents.themoviedb://603?lang=en)
// and short forms (tmdb://603) are understood; anything else is unusable.
func ParseExternalID(guid string) (provider, id string, ok bool) {
	trimmed := strings.TrimSpace(guid)
	if idx := strings.Index(trimmed, "?"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	scheme, rest, found := strings.Cut(trimmed, "://")
	if !found || rest == "" {
		return "", "", false
	}

	switch {
	case strings.Contains(scheme, "themoviedb"), scheme == ProviderTMDB:
		provider = ProviderTMDB
	case strings.Contains(scheme, "thetvdb"), scheme == ProviderTVDB:
		provider = ProviderTVDB
	default:
		return "", "", false
	}
	return provider, rest, true
}
