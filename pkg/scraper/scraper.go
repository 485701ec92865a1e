package scraper

import (
	"github.com/google/uuid"

	"riotscraper/pkg/config"
	errs "riotscraper/pkg/errors"
	"riotscraper/pkg/logger"
	"riotscraper/pkg/riot"
	"riotscraper/pkg/sink"
	"riotscraper/pkg/ui"
)

// Scraper runs one scrape session: resolve the player, walk the match listing
// page by page, and persist every match the sink does not already hold. Each
// record is appended before the loop advances, so killing the process at any
// point loses at most the match currently in flight and a later append-mode
// run picks up exactly where this one stopped.
type Scraper struct {
	client RiotClient
	sink   sink.Sink
	cfg    *config.Config
	logger logger.Logger
}

// Result summarizes a completed session
type Result struct {
	Player  string
	PUUID   string
	Pages   int
	Stored  int
	Skipped int
}

// New creates a scraper backed by the real Riot API client
func New(cfg *config.Config, snk sink.Sink, log logger.Logger) (*Scraper, error) {
	client, err := riot.NewClient(&cfg.Riot, &cfg.Retry, log)
	if err != nil {
		return nil, err
	}
	return NewWithClient(client, snk, cfg, log), nil
}

// NewWithClient creates a scraper with an explicit client. Tests use this to
// substitute an in-memory API.
func NewWithClient(client RiotClient, snk sink.Sink, cfg *config.Config, log logger.Logger) *Scraper {
	return &Scraper{
		client: client,
		sink:   snk,
		cfg:    cfg,
		logger: log,
	}
}

// Scrape walks the full match history of player and appends every match not
// already in the sink. Any fetch or storage failure aborts the session; the
// sink is left holding everything appended before the failure.
func (s *Scraper) Scrape(player string) (*Result, error) {
	sessionID := uuid.New().String()
	log := s.logger.WithFields(map[string]interface{}{
		"session_id": sessionID,
		"player":     player,
	})

	log.Info("Starting scrape session")

	summoner, err := s.client.SummonerByName(player)
	if err != nil {
		return nil, errs.NewFetchError(errs.StageSummoner, "", err)
	}

	log.WithField("puuid", summoner.PUUID).Debug("Resolved summoner")

	result := &Result{
		Player: player,
		PUUID:  summoner.PUUID,
	}

	pages := newPager(s.client, summoner.PUUID, s.cfg.Scrape.PageSize)
	for {
		ids, err := pages.Next()
		if err != nil {
			return nil, err
		}
		if ids == nil {
			break
		}

		for _, matchID := range ids {
			if s.sink.Contains(matchID) {
				result.Skipped++
				logger.LogMatchSkipped(player, matchID)
				continue
			}
			if err := s.store(player, matchID); err != nil {
				return nil, err
			}
			result.Stored++
		}

		result.Pages = pages.Pages()
		ui.PrintProgress(result.Pages, result.Stored, result.Skipped)
	}

	log.WithFields(map[string]interface{}{
		"pages":   result.Pages,
		"stored":  result.Stored,
		"skipped": result.Skipped,
	}).Info("Scrape session complete")

	return result, nil
}

// store fetches one match's documents and appends the assembled record
func (s *Scraper) store(player, matchID string) error {
	detail, err := s.client.MatchDetail(matchID)
	if err != nil {
		return errs.NewFetchError(errs.StageDetail, matchID, err)
	}

	record := &sink.Record{
		MatchID: matchID,
		Detail:  detail,
	}

	if s.cfg.Scrape.WithTimeline {
		timeline, err := s.client.MatchTimeline(matchID)
		if err != nil {
			return errs.NewFetchError(errs.StageTimeline, matchID, err)
		}
		record.Timeline = timeline
	}

	if err := s.sink.Append(record); err != nil {
		return err
	}

	logger.LogMatchStored(player, matchID, s.cfg.Scrape.WithTimeline)
	return nil
}
