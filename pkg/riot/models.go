package riot

// Summoner represents a summoner looked up by name. Only the fields the
// scraper needs are mapped; the PUUID is what the match-v5 listing is keyed by.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	SummonerLevel int64  `json:"summonerLevel"`
}
