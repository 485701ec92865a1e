package sink

import "encoding/json"

// Record is the persisted unit: one match, keyed by its Riot match ID. The
// detail and timeline payloads are opaque API documents stored verbatim;
// Timeline is present only when timeline fetching was enabled for the run.
type Record struct {
	MatchID  string          `json:"match_id"`
	Detail   json.RawMessage `json:"detail"`
	Timeline json.RawMessage `json:"timeline,omitempty"`
}

// Marshal renders the record as a single JSON document
func (r *Record) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// recordKey is the minimal projection used when scanning existing records to
// rebuild the membership index
type recordKey struct {
	MatchID string `json:"match_id"`
}
