package holiday

import (
	"context"
)

type StubClient struct {
	events     []FeedEvent
	err        error
	fetchCalls int
}

func NewStubClient() *StubClient {
	return &StubClient{}
}

func (s *StubClient) FetchYear(ctx context.Context, year int) ([]FeedEvent, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	events := make([]FeedEvent, 0, len(s.events))
	for _, event := range s.events {
		if event.Date.Year() == year {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *StubClient) SetEvents(events []FeedEvent) {
	s.events = events
}

func (s *StubClient) SetError(err error) {
	s.err = err
}

func (s *StubClient) FetchCalls() int {
	return s.fetchCalls
}

func (s *StubClient) Reset() {
	s.events = nil
	s.err = nil
	s.fetchCalls = 0
}
