package scraper

import (
	errs "riotscraper/pkg/errors"
)

// pager walks a summoner's match listing one page at a time. Pages are fetched
// lazily so that a run interrupted mid-history never paid for listings it did
// not reach. The walk ends when the API returns a page shorter than the
// requested size; an empty first page means the summoner has no matches.
type pager struct {
	client   RiotClient
	puuid    string
	pageSize int

	start     int
	pagesDone int
	exhausted bool
}

func newPager(client RiotClient, puuid string, pageSize int) *pager {
	return &pager{
		client:   client,
		puuid:    puuid,
		pageSize: pageSize,
	}
}

// Next fetches the next page of match IDs. It returns a nil slice once the
// listing is exhausted. A listing failure is fatal for the whole session and
// comes back wrapped with the stage it happened in.
func (p *pager) Next() ([]string, error) {
	if p.exhausted {
		return nil, nil
	}

	ids, err := p.client.ListMatchIDs(p.puuid, p.start, p.pageSize)
	if err != nil {
		return nil, errs.NewFetchError(errs.StageListing, "", err)
	}

	if len(ids) < p.pageSize {
		p.exhausted = true
	}
	if len(ids) == 0 {
		return nil, nil
	}

	p.start += len(ids)
	p.pagesDone++
	return ids, nil
}

// Pages returns how many non-empty pages have been consumed so far
func (p *pager) Pages() int {
	return p.pagesDone
}
