package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riotscraper/pkg/config"
	errs "riotscraper/pkg/errors"
	"riotscraper/pkg/logger"
	"riotscraper/pkg/riot"
	"riotscraper/pkg/sink"
	"riotscraper/pkg/ui"
)

func init() {
	ui.SetQuietMode(true)
}

// fakeClient serves a fixed match history from memory. ListMatchIDs slices the
// history the way the real endpoint does, so page-size and short-page logic
// run against it unchanged.
type fakeClient struct {
	summoner *riot.Summoner
	history  []string

	summonerErr error
	listErr     error
	detailErr   map[string]error
	timelineErr map[string]error

	detailCalls int
}

func newFakeClient(history ...string) *fakeClient {
	return &fakeClient{
		summoner: &riot.Summoner{
			ID:    "enc-id",
			PUUID: "puuid-1",
			Name:  "Faker",
		},
		history: history,
	}
}

func (f *fakeClient) SummonerByName(name string) (*riot.Summoner, error) {
	if f.summonerErr != nil {
		return nil, f.summonerErr
	}
	return f.summoner, nil
}

func (f *fakeClient) ListMatchIDs(puuid string, start, count int) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if start >= len(f.history) {
		return nil, nil
	}
	end := start + count
	if end > len(f.history) {
		end = len(f.history)
	}
	return f.history[start:end], nil
}

func (f *fakeClient) MatchDetail(matchID string) (json.RawMessage, error) {
	if err := f.detailErr[matchID]; err != nil {
		return nil, err
	}
	f.detailCalls++
	return json.RawMessage(fmt.Sprintf(`{"metadata":{"matchId":%q}}`, matchID)), nil
}

func (f *fakeClient) MatchTimeline(matchID string) (json.RawMessage, error) {
	if err := f.timelineErr[matchID]; err != nil {
		return nil, err
	}
	return json.RawMessage(fmt.Sprintf(`{"frames":[],"matchId":%q}`, matchID)), nil
}

// memSink is an in-memory Sink with an optional injected append failure
type memSink struct {
	mu        sync.Mutex
	ids       map[string]bool
	records   []*sink.Record
	failAfter int // fail the Nth successful append onward; -1 never fails
}

func newMemSink() *memSink {
	return &memSink{ids: map[string]bool{}, failAfter: -1}
}

func (m *memSink) Contains(matchID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids[matchID]
}

func (m *memSink) Append(record *sink.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAfter >= 0 && len(m.records) >= m.failAfter {
		return errs.NewStorageError("append", "mem", errors.New("disk full"))
	}
	m.ids[record.MatchID] = true
	m.records = append(m.records, record)
	return nil
}

func (m *memSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func (m *memSink) Close() error { return nil }

func (m *memSink) storedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = r.MatchID
	}
	return out
}

func testConfig(pageSize int, withTimeline bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scrape.PageSize = pageSize
	cfg.Scrape.WithTimeline = withTimeline
	return cfg
}

func newTestScraper(client RiotClient, snk sink.Sink, cfg *config.Config) *Scraper {
	return NewWithClient(client, snk, cfg, logger.NewTestLogger())
}

func TestScrapeStoresFullHistory(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2", "NA1_3")
	snk := newMemSink()
	s := newTestScraper(client, snk, testConfig(2, false))

	result, err := s.Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stored)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, []string{"NA1_1", "NA1_2", "NA1_3"}, snk.storedIDs())
}

func TestScrapeRerunStoresNothing(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2", "NA1_3")
	snk := newMemSink()
	cfg := testConfig(2, false)

	_, err := newTestScraper(client, snk, cfg).Scrape("Faker")
	require.NoError(t, err)
	require.Equal(t, 3, snk.Count())

	result, err := newTestScraper(client, snk, cfg).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stored)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 3, snk.Count())
}

func TestScrapeSkipsPreloadedRecords(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2")
	snk := newMemSink()
	require.NoError(t, snk.Append(&sink.Record{
		MatchID: "NA1_1",
		Detail:  json.RawMessage(`{}`),
	}))

	result, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stored)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"NA1_1", "NA1_2"}, snk.storedIDs())
}

func TestScrapeEmptyHistory(t *testing.T) {
	client := newFakeClient()
	snk := newMemSink()

	result, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Stored)
	assert.Equal(t, 0, result.Pages)
	assert.Equal(t, 0, snk.Count())
}

func TestScrapeWithTimeline(t *testing.T) {
	client := newFakeClient("NA1_1")
	snk := newMemSink()

	_, err := newTestScraper(client, snk, testConfig(10, true)).Scrape("Faker")
	require.NoError(t, err)

	require.Equal(t, 1, snk.Count())
	rec := snk.records[0]
	assert.NotEmpty(t, rec.Detail)
	assert.NotEmpty(t, rec.Timeline)
	assert.Contains(t, string(rec.Timeline), "frames")
}

func TestScrapeWithoutTimelineLeavesFieldEmpty(t *testing.T) {
	client := newFakeClient("NA1_1")
	snk := newMemSink()

	_, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.NoError(t, err)

	require.Equal(t, 1, snk.Count())
	assert.Nil(t, snk.records[0].Timeline)
}

func TestScrapeSummonerFailureIsFatal(t *testing.T) {
	client := newFakeClient("NA1_1")
	client.summonerErr = errors.New("boom")
	snk := newMemSink()

	_, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.Error(t, err)

	var fe *errs.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.StageSummoner, fe.Stage)
	assert.Equal(t, 0, snk.Count())
}

func TestScrapeDetailFailureAbortsSession(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2", "NA1_3")
	client.detailErr = map[string]error{"NA1_2": errors.New("boom")}
	snk := newMemSink()

	_, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.Error(t, err)

	var fe *errs.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.StageDetail, fe.Stage)
	assert.Equal(t, "NA1_2", fe.MatchID)

	// Everything before the failure is already durable
	assert.Equal(t, []string{"NA1_1"}, snk.storedIDs())
}

func TestScrapeTimelineFailureAbortsSession(t *testing.T) {
	client := newFakeClient("NA1_1")
	client.timelineErr = map[string]error{"NA1_1": errors.New("boom")}
	snk := newMemSink()

	_, err := newTestScraper(client, snk, testConfig(10, true)).Scrape("Faker")
	require.Error(t, err)

	var fe *errs.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errs.StageTimeline, fe.Stage)
	assert.Equal(t, 0, snk.Count())
}

func TestScrapeStorageFailureAbortsSession(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2", "NA1_3")
	snk := newMemSink()
	snk.failAfter = 2

	_, err := newTestScraper(client, snk, testConfig(10, false)).Scrape("Faker")
	require.Error(t, err)
	assert.True(t, errs.IsStorageError(err))
	assert.Equal(t, []string{"NA1_1", "NA1_2"}, snk.storedIDs())
}

func TestScrapeResumesAfterAbort(t *testing.T) {
	client := newFakeClient("NA1_1", "NA1_2", "NA1_3", "NA1_4")
	snk := newMemSink()
	snk.failAfter = 2
	cfg := testConfig(2, false)

	_, err := newTestScraper(client, snk, cfg).Scrape("Faker")
	require.Error(t, err)
	require.Equal(t, 2, snk.Count())

	snk.failAfter = -1
	result, err := newTestScraper(client, snk, cfg).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, []string{"NA1_1", "NA1_2", "NA1_3", "NA1_4"}, snk.storedIDs())
}

func TestScrapeResumeIsOrderIndependent(t *testing.T) {
	cfg := testConfig(2, false)
	snk := newMemSink()

	first := newFakeClient("NA1_3", "NA1_2", "NA1_1")
	_, err := newTestScraper(first, snk, cfg).Scrape("Faker")
	require.NoError(t, err)

	// New matches landed since the first run and the listing shifted
	second := newFakeClient("NA1_5", "NA1_4", "NA1_3", "NA1_2", "NA1_1")
	result, err := newTestScraper(second, snk, cfg).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 5, snk.Count())
	assert.ElementsMatch(t,
		[]string{"NA1_1", "NA1_2", "NA1_3", "NA1_4", "NA1_5"}, snk.storedIDs())
}

func TestScrapeNeverStoresDuplicateIDs(t *testing.T) {
	// Pagination drift can repeat an ID across pages within one run
	client := newFakeClient("NA1_1", "NA1_2", "NA1_1", "NA1_3")
	snk := newMemSink()

	result, err := newTestScraper(client, snk, testConfig(2, false)).Scrape("Faker")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stored)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"NA1_1", "NA1_2", "NA1_3"}, snk.storedIDs())
}

func TestScrapeAgainstFileSink(t *testing.T) {
	path := t.TempDir() + "/out.jsonl"
	cfg := testConfig(2, false)

	fileSink, err := sink.NewFileSink(path, false)
	require.NoError(t, err)

	client := newFakeClient("NA1_1", "NA1_2", "NA1_3")
	result, err := newTestScraper(client, fileSink, cfg).Scrape("Faker")
	require.NoError(t, err)
	require.NoError(t, fileSink.Close())
	require.Equal(t, 3, result.Stored)

	// Reopening the destination in append mode is the whole resume story
	reopened, err := sink.NewFileSink(path, true)
	require.NoError(t, err)
	defer reopened.Close()

	result, err = newTestScraper(client, reopened, cfg).Scrape("Faker")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stored)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, 3, reopened.Count())
}
