package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// FeedEvent is a single holiday entry from the public feed.
type FeedEvent struct {
	Title string
	Date  time.Time
}

type Client interface {
	// FetchYear downloads the public holiday feed and returns the events
	// of the configured region for the given year.
	FetchYear(ctx context.Context, year int) ([]FeedEvent, error)
}

type ClientImpl struct {
	feedURL    string
	region     string
	httpClient *http.Client
}

func NewClient(feedURL string, region string) *ClientImpl {
	return &ClientImpl{
		feedURL:    feedURL,
		region:     region,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchYear retrieves the holiday feed. The feed is shaped as
// { "<region>": { "events": [ {"date": "YYYY-MM-DD", "title": ...} ] } }
// and covers multiple years, so the result is filtered by year.
func (c *ClientImpl) FetchYear(ctx context.Context, year int) ([]FeedEvent, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.feedURL, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("holiday feed returned non-OK status: %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var feed map[string]struct {
		Events []struct {
			Title string `json:"title"`
			Date  string `json:"date"`
		} `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		log.Errorf("Failed to decode holiday feed: %v", err)
		return nil, err
	}

	division, ok := feed[c.region]
	if !ok {
		err := fmt.Errorf("holiday feed has no region %q", c.region)
		log.Error(err)
		return nil, err
	}

	events := make([]FeedEvent, 0, len(division.Events))
	for _, event := range division.Events {
		date, err := time.Parse("2006-01-02", event.Date)
		if err != nil {
			log.Warnf("skipping holiday feed event with malformed date %q: %v", event.Date, err)
			continue
		}
		if date.Year() != year {
			continue
		}
		events = append(events, FeedEvent{Title: event.Title, Date: date})
	}

	return events, nil
}
