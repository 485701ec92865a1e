package scraper

import (
	"encoding/json"

	"riotscraper/pkg/riot"
)

// RiotClient is the slice of the Riot API the scrape loop drives. riot.Client
// satisfies it; tests substitute an in-memory fake.
type RiotClient interface {
	// SummonerByName resolves a summoner name to its account identifiers
	SummonerByName(name string) (*riot.Summoner, error)
	// ListMatchIDs returns one page of match IDs, most recent first
	ListMatchIDs(puuid string, start, count int) ([]string, error)
	// MatchDetail fetches the full match document verbatim
	MatchDetail(matchID string) (json.RawMessage, error)
	// MatchTimeline fetches the per-frame timeline document verbatim
	MatchTimeline(matchID string) (json.RawMessage, error)
}
