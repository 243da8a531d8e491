// Package feed pulls raw zmanim from the chabad.org RSS feed. Each item
// title is a "<field> - <time>" pair; the feed occasionally returns an empty
// item list, which is treated as transient and retried.
package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
	"github.com/Yossi/zmanim-scraper/pkg/logger"
	"github.com/Yossi/zmanim-scraper/pkg/metrics"
)

const defaultFeedURL = "http://www.chabad.org/tools/rss/zmanim.xml"

// Client fetches one day of zmanim per request.
type Client struct {
	log     logger.Logger
	parser  *gofeed.Parser
	feedURL string
	zipcode string

	maxAttempts int
	backoff     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithFeedURL overrides the feed endpoint, mainly for tests.
func WithFeedURL(url string) Option {
	return func(c *Client) { c.feedURL = url }
}

// WithMaxAttempts bounds the retries on an empty or failed fetch.
func WithMaxAttempts(n int) Option {
	return func(c *Client) { c.maxAttempts = n }
}

// WithBackoff sets the pause between retries.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient builds a feed client for one zipcode.
func NewClient(zipcode string, opts ...Option) *Client {
	c := &Client{
		log:         logger.Named("feed"),
		parser:      gofeed.NewParser(),
		feedURL:     defaultFeedURL,
		zipcode:     zipcode,
		maxAttempts: 5,
		backoff:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RawDay fetches the zmanim for one localized civil date, retrying until the
// feed returns a non-empty day or the attempt budget runs out.
func (c *Client) RawDay(ctx context.Context, date time.Time) (model.RawDay, error) {
	url := fmt.Sprintf("%s?z=%s&tDate=%s", c.feedURL, c.zipcode, date.Format("01/02/2006"))

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			metrics.RecordFeedRetry()
			select {
			case <-ctx.Done():
				return model.RawDay{}, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		metrics.RecordFeedFetch()
		times, err := c.fetch(ctx, url)
		if err != nil {
			lastErr = err
			c.log.Warn(ctx, "feed fetch failed",
				logger.String("date", date.Format("2006-01-02")),
				logger.Int("attempt", attempt),
				logger.Error(err))
			continue
		}
		if len(times) == 0 {
			lastErr = fmt.Errorf("empty feed for %s", date.Format("2006-01-02"))
			c.log.Warn(ctx, "feed returned no items",
				logger.String("date", date.Format("2006-01-02")),
				logger.Int("attempt", attempt))
			continue
		}
		return model.RawDay{Date: date, Times: times}, nil
	}

	metrics.RecordFeedFailure()
	return model.RawDay{}, fmt.Errorf("feed exhausted %d attempts: %w", c.maxAttempts, lastErr)
}

// fetch parses one feed document into a field-name-to-time map.
func (c *Client) fetch(ctx context.Context, url string) (map[string]string, error) {
	doc, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, err
	}

	times := make(map[string]string, len(doc.Items))
	for _, item := range doc.Items {
		field, value, found := strings.Cut(item.Title, "-")
		if !found {
			continue
		}
		times[model.NormalizeField(field)] = strings.TrimSpace(value)
	}
	return times, nil
}
