// Package scraper drives the scrape session: resolve a player to their PUUID,
// walk the paginated match listing, and persist each new match to the record
// sink before moving on. The sink's membership index is the only resume state;
// there are no checkpoint files. Re-running against the same destination in
// append mode skips everything already stored and fetches only what is
// missing, regardless of how or when the previous run ended.
package scraper
