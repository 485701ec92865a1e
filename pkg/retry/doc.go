// Package retry implements the retry policy for Riot API requests.
//
// Every remote call the scraper makes goes through Do (or DoWithResult) with
// exponential backoff and jitter. Whether an error is retried is decided by
// the typed errors in pkg/errors: network failures, 429s and 5xx responses
// are retried; auth failures, 404s and parse errors are not. Once the policy
// is exhausted the error propagates to the caller, where it becomes fatal to
// the scrape session.
package retry
