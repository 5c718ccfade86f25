// Package edgar fetches company financial data from the SEC EDGAR
// submissions and company-facts endpoints. The findings core consumes
// only the resulting enrichment shape; every failure here degrades to
// absent enrichment, never to a broken assessment.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lighthouise/engine/internal/model"
)

// Client talks to the EDGAR JSON APIs with SEC fair-access rate
// limiting and a small in-memory TTL cache.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter

	mu    sync.Mutex
	cache map[string]cacheEntry
	ttl   time.Duration
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// Options configures the EDGAR client.
type Options struct {
	BaseURL        string
	UserAgent      string
	RequestsPerSec float64
	CacheTTL       time.Duration
	Timeout        time.Duration
}

// New creates an EDGAR client. The SEC requires a descriptive
// User-Agent; requests without one are rejected.
func New(opts Options) (*Client, error) {
	if opts.UserAgent == "" {
		return nil, eris.New("edgar: user agent is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://data.sec.gov"
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 8
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		http:      &http.Client{Timeout: opts.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
		cache:     make(map[string]cacheEntry),
		ttl:       opts.CacheTTL,
	}, nil
}

// factsResponse is the subset of the company-facts payload we read.
type factsResponse struct {
	EntityName string `json:"entityName"`
	Facts      struct {
		USGAAP map[string]struct {
			Units map[string][]struct {
				End  string  `json:"end"`
				Val  float64 `json:"val"`
				Form string  `json:"form"`
				FY   int     `json:"fy"`
				FP   string  `json:"fp"`
			} `json:"units"`
		} `json:"us-gaap"`
	} `json:"facts"`
}

// revenueTags are tried in order; filers report revenue under
// different us-gaap concepts.
var revenueTags = []string{
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"Revenues",
	"SalesRevenueNet",
}

// CompanyFacts fetches the latest annual revenue for a CIK and maps it
// into the enrichment shape. A CIK with no usable revenue facts yields
// an enrichment with only the description set.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*model.CompanyEnrichment, error) {
	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.baseURL, padCIK(cik))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var facts factsResponse
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, eris.Wrap(err, "edgar: parse company facts")
	}

	enrich := &model.CompanyEnrichment{}
	if facts.EntityName != "" {
		name := facts.EntityName
		enrich.Description = &name
	}

	if rev, ok := latestAnnualRevenue(&facts); ok {
		enrich.Revenue = &rev
	}

	return enrich, nil
}

// padCIK left-pads a CIK to the 10 digits the facts endpoint expects.
func padCIK(cik string) string {
	cik = strings.TrimLeft(cik, "0")
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}

// latestAnnualRevenue picks the most recent 10-K USD revenue value
// across the known revenue tags.
func latestAnnualRevenue(facts *factsResponse) (float64, bool) {
	var (
		best    float64
		bestEnd string
		found   bool
	)
	for _, tag := range revenueTags {
		concept, ok := facts.Facts.USGAAP[tag]
		if !ok {
			continue
		}
		for _, v := range concept.Units["USD"] {
			if v.Form != "10-K" || v.FP != "FY" {
				continue
			}
			if v.End > bestEnd {
				bestEnd = v.End
				best = v.Val
				found = true
			}
		}
		if found {
			break
		}
	}
	return best, found
}

// get performs a rate-limited, cached GET with one retry on 5xx.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	if entry, ok := c.cache[url]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.body, nil
	}
	c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "edgar: rate limit wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "edgar: build request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = eris.Wrap(err, "edgar: request")
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK && readErr == nil:
			c.mu.Lock()
			c.cache[url] = cacheEntry{body: body, expires: time.Now().Add(c.ttl)}
			c.mu.Unlock()
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, eris.Errorf("edgar: not found: %s", url)
		case resp.StatusCode >= 500:
			lastErr = eris.Errorf("edgar: server error %d", resp.StatusCode)
			zap.L().Warn("edgar: retrying after server error",
				zap.Int("status", resp.StatusCode),
				zap.String("url", url),
			)
			continue
		default:
			return nil, eris.Errorf("edgar: unexpected status %d for %s", resp.StatusCode, url)
		}
	}
	return nil, lastErr
}
