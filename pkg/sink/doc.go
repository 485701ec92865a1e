// Package sink provides durable, append-only storage of match records with a
// membership test.
//
// The Sink interface is the resumability contract of the whole scraper:
// Append commits one record durably before returning, and Contains reflects
// every committed record from this or any previous session. Because the
// orchestrator appends immediately after each fetch and checks Contains
// before each one, a process killed at any point can be restarted against the
// same destination and picks up exactly where it stopped, with no duplicate
// records and no separate checkpoint state.
//
// Three backends implement the interface: a JSON Lines file (the default),
// SQLite, and Redis. All of them rebuild their membership index by scanning
// the destination once when opened in append mode.
package sink
