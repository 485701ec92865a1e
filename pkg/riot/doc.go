// Package riot implements the Riot Games API client the scraper consumes.
//
// The client covers the three capabilities the scrape loop needs: resolving a
// summoner name to a PUUID (summoner-v4), listing match IDs page by page
// (match-v5 ids), and fetching match detail and timeline documents (match-v5).
// Detail and timeline payloads are opaque json.RawMessage values passed
// through to storage untouched.
//
// Transience is resolved here, not by callers: every request is gated by a
// dual-window rate limiter matching Riot's per-second and per-two-minutes
// caps, and retried with exponential backoff on network errors, 429s and 5xx
// responses. An error surfaced by this package is final.
//
// Riot splits its API across two kinds of hosts. Summoner lookups go to the
// platform host (na1, euw1, ...); match-v5 goes to the regional routing host
// (americas, europe, asia, sea). The endpoints file carries the mapping.
package riot
