package riot

import (
	"fmt"
	"net/url"
)

const (
	// SummonerByNameEndpoint resolves a summoner name to account identifiers
	SummonerByNameEndpoint = "/lol/summoner/v4/summoners/by-name/%s"

	// MatchIDsEndpoint lists match IDs for a PUUID, newest first, paginated
	// via start/count offsets
	MatchIDsEndpoint = "/lol/match/v5/matches/by-puuid/%s/ids"

	// MatchEndpoint fetches full match detail
	MatchEndpoint = "/lol/match/v5/matches/%s"

	// MatchTimelineEndpoint fetches the per-match timeline
	MatchTimelineEndpoint = "/lol/match/v5/matches/%s/timeline"

	// MaxPageSize is the largest count the match listing accepts
	MaxPageSize = 100
)

// regionalRoutes maps platform routing values (the regions players know) to
// the regional routing values match-v5 is served from.
var regionalRoutes = map[string]string{
	"br1":  "americas",
	"la1":  "americas",
	"la2":  "americas",
	"na1":  "americas",
	"oc1":  "americas",
	"euw1": "europe",
	"eun1": "europe",
	"tr1":  "europe",
	"ru":   "europe",
	"jp1":  "asia",
	"kr":   "asia",
	"ph2":  "sea",
	"sg2":  "sea",
	"th2":  "sea",
	"tw2":  "sea",
	"vn2":  "sea",
}

// IsValidPlatform reports whether region is a known platform routing value
func IsValidPlatform(region string) bool {
	_, ok := regionalRoutes[region]
	return ok
}

// RegionalRoute returns the regional routing value serving match-v5 for the
// given platform region
func RegionalRoute(region string) (string, error) {
	route, ok := regionalRoutes[region]
	if !ok {
		return "", fmt.Errorf("unknown region %q", region)
	}
	return route, nil
}

// PlatformBaseURL returns the API host for platform-scoped endpoints
// (summoner-v4)
func PlatformBaseURL(region string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", region)
}

// RegionalBaseURL returns the API host for regionally-routed endpoints
// (match-v5)
func RegionalBaseURL(route string) string {
	return fmt.Sprintf("https://%s.api.riotgames.com", route)
}

// SummonerByNamePath builds the summoner-v4 by-name path
func SummonerByNamePath(name string) string {
	return fmt.Sprintf(SummonerByNameEndpoint, url.PathEscape(name))
}

// MatchIDsPath builds the match listing path with pagination parameters
func MatchIDsPath(puuid string, start, count int) string {
	if count <= 0 {
		count = MaxPageSize
	} else if count > MaxPageSize {
		count = MaxPageSize
	}
	if start < 0 {
		start = 0
	}

	params := url.Values{}
	params.Set("start", fmt.Sprint(start))
	params.Set("count", fmt.Sprint(count))

	return fmt.Sprintf(MatchIDsEndpoint, url.PathEscape(puuid)) + "?" + params.Encode()
}

// MatchPath builds the match detail path
func MatchPath(matchID string) string {
	return fmt.Sprintf(MatchEndpoint, url.PathEscape(matchID))
}

// MatchTimelinePath builds the match timeline path
func MatchTimelinePath(matchID string) string {
	return fmt.Sprintf(MatchTimelineEndpoint, url.PathEscape(matchID))
}
