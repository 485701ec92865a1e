package riot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"riotscraper/pkg/config"
	errs "riotscraper/pkg/errors"
	"riotscraper/pkg/logger"
	"riotscraper/pkg/ratelimit"
	"riotscraper/pkg/retry"
)

// Client is a rate-limited, retrying Riot API client. Every request waits for
// the dual-window rate limiter and runs under the configured retry policy, so
// any error it returns is already final: callers treat it as fatal.
type Client struct {
	http        *resty.Client
	platformURL string
	routingURL  string
	limiter     ratelimit.Limiter
	retryCfg    *retry.Config
	logger      logger.Logger
}

// NewClient creates a Riot API client for the configured region
func NewClient(riotCfg *config.RiotConfig, retryCfg *config.RetryConfig, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if riotCfg.APIKey == "" {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeAuth,
			Message: "missing Riot API key",
		}
	}

	route, err := RegionalRoute(riotCfg.Region)
	if err != nil {
		return nil, fmt.Errorf("invalid region configuration: %w", err)
	}

	httpClient := resty.New().
		SetTimeout(riotCfg.RequestTimeout).
		SetHeader("X-Riot-Token", riotCfg.APIKey).
		SetHeader("Accept", "application/json")

	return &Client{
		http:        httpClient,
		platformURL: PlatformBaseURL(riotCfg.Region),
		routingURL:  RegionalBaseURL(route),
		limiter:     ratelimit.NewDual(riotCfg.RequestsPerSecond, riotCfg.RequestsPerTwoMinutes),
		retryCfg:    retry.FromConfig(retryCfg, log),
		logger:      log,
	}, nil
}

// SetBaseURLs overrides the API hosts; used in tests against a local server
func (c *Client) SetBaseURLs(platformURL, routingURL string) {
	c.platformURL = platformURL
	c.routingURL = routingURL
}

// get performs one rate-limited GET and classifies the outcome
func (c *Client) get(url string) ([]byte, error) {
	c.limiter.Wait()

	start := time.Now()
	resp, err := c.http.R().Get(url)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode(),
		"duration": duration,
	})

	if err := c.checkResponseStatus(resp, url); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// getWithRetry runs get under the configured retry policy
func (c *Client) getWithRetry(url string) ([]byte, error) {
	return retry.DoWithResult(func() ([]byte, error) {
		return c.get(url)
	}, c.retryCfg)
}

// checkResponseStatus maps HTTP status codes onto typed API errors
func (c *Client) checkResponseStatus(resp *resty.Response, url string) error {
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		c.logger.WarnWithFields("authentication error", map[string]interface{}{
			"status": resp.StatusCode(),
			"url":    url,
		})
		return &errs.Error{
			Type:    errs.ErrorTypeAuth,
			Message: "API key rejected",
			Code:    resp.StatusCode(),
		}
	case http.StatusNotFound:
		return &errs.Error{
			Type:    errs.ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode(),
		}
	case http.StatusTooManyRequests:
		c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
			"status":      resp.StatusCode(),
			"url":         url,
			"retry_after": resp.Header().Get("Retry-After"),
		})
		return &errs.Error{
			Type:    errs.ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode(),
		}
	default:
		if resp.StatusCode() >= 500 {
			c.logger.ErrorWithFields("server error", map[string]interface{}{
				"status": resp.StatusCode(),
				"url":    url,
			})
			return &errs.Error{
				Type:    errs.ErrorTypeServerError,
				Message: fmt.Sprintf("server returned status %d", resp.StatusCode()),
				Code:    resp.StatusCode(),
			}
		}
		return &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode()),
			Code:    resp.StatusCode(),
		}
	}
}

// SummonerByName resolves a summoner name to its account identifiers
func (c *Client) SummonerByName(name string) (*Summoner, error) {
	url := c.platformURL + SummonerByNamePath(name)

	body, err := c.getWithRetry(url)
	if err != nil {
		return nil, err
	}

	var summoner Summoner
	if err := json.Unmarshal(body, &summoner); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse summoner response: %v", err),
		}
	}

	c.logger.DebugWithFields("resolved summoner", map[string]interface{}{
		"name":  summoner.Name,
		"puuid": summoner.PUUID,
	})

	return &summoner, nil
}

// ListMatchIDs returns one page of match IDs for the PUUID, in the order the
// API yields them. A 404 means the account has no matches in the requested
// window and is reported as an empty page.
func (c *Client) ListMatchIDs(puuid string, start, count int) ([]string, error) {
	url := c.routingURL + MatchIDsPath(puuid, start, count)

	body, err := c.getWithRetry(url)
	if err != nil {
		var apiErr *errs.Error
		if errors.As(err, &apiErr) && apiErr.Type == errs.ErrorTypeNotFound {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse match ID listing: %v", err),
		}
	}

	return ids, nil
}

// MatchDetail fetches the full match document. The payload is passed through
// verbatim; the scraper never inspects it.
func (c *Client) MatchDetail(matchID string) (json.RawMessage, error) {
	url := c.routingURL + MatchPath(matchID)
	body, err := c.getWithRetry(url)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// MatchTimeline fetches the per-match timeline document
func (c *Client) MatchTimeline(matchID string) (json.RawMessage, error) {
	url := c.routingURL + MatchTimelinePath(matchID)
	body, err := c.getWithRetry(url)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}
