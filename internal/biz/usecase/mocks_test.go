package usecase

import (
	"context"
	"sync"

	"github.com/wrenlabs/wren/internal/biz/domain"
	"github.com/wrenlabs/wren/internal/biz/repo"
)

// Mock implementations shared by the usecase tests.

type mockPlatformRepo struct {
	mu sync.Mutex

	timeline    []domain.Tweet
	timelineErr error

	searchPages []searchResult // consumed in order
	searchCalls []repo.SearchQuery
	searchFn    func(ctx context.Context, q repo.SearchQuery) (*repo.SearchPage, error)

	tweetsByID map[string]*domain.Tweet

	likeErr    error
	retweetErr error
	quoteErr   error
	replyErr   error

	liked     []string
	retweeted []string
	quoted    []string
	replied   []string
}

type searchResult struct {
	page *repo.SearchPage
	err  error
}

func (m *mockPlatformRepo) FetchTimeline(ctx context.Context, count int) ([]domain.Tweet, error) {
	return m.timeline, m.timelineErr
}

func (m *mockPlatformRepo) SearchTweets(ctx context.Context, q repo.SearchQuery) (*repo.SearchPage, error) {
	m.mu.Lock()
	m.searchCalls = append(m.searchCalls, q)
	m.mu.Unlock()

	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.searchPages) == 0 {
		return &repo.SearchPage{}, nil
	}
	next := m.searchPages[0]
	m.searchPages = m.searchPages[1:]
	return next.page, next.err
}

func (m *mockPlatformRepo) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	if t, ok := m.tweetsByID[id]; ok {
		return t, nil
	}
	return nil, &notFoundError{id: id}
}

type notFoundError struct{ id string }

func (e *notFoundError) Error() string { return "tweet not found: " + e.id }

func (m *mockPlatformRepo) Like(ctx context.Context, tweetID string) error {
	if m.likeErr != nil {
		return m.likeErr
	}
	m.liked = append(m.liked, tweetID)
	return nil
}

func (m *mockPlatformRepo) Retweet(ctx context.Context, tweetID string) error {
	if m.retweetErr != nil {
		return m.retweetErr
	}
	m.retweeted = append(m.retweeted, tweetID)
	return nil
}

func (m *mockPlatformRepo) Quote(ctx context.Context, text, tweetID string) (string, error) {
	if m.quoteErr != nil {
		return "", m.quoteErr
	}
	m.quoted = append(m.quoted, tweetID)
	return "new-" + tweetID, nil
}

func (m *mockPlatformRepo) Reply(ctx context.Context, text, tweetID string) (string, error) {
	if m.replyErr != nil {
		return "", m.replyErr
	}
	m.replied = append(m.replied, tweetID)
	return "new-" + tweetID, nil
}

type mockModelRepo struct {
	mu sync.Mutex

	decision    *domain.Decision
	decideErrs  []error // consumed in order before decision is returned
	decideCalls int

	generated   string
	generateErr error

	described string
}

func (m *mockModelRepo) DecideActions(ctx context.Context, dc repo.DecisionContext) (*domain.Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decideCalls++
	if len(m.decideErrs) > 0 {
		err := m.decideErrs[0]
		m.decideErrs = m.decideErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if m.decision == nil {
		return &domain.Decision{Like: true, Rationale: "default"}, nil
	}
	d := *m.decision
	return &d, nil
}

func (m *mockModelRepo) GenerateText(ctx context.Context, prompt string) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.generated == "" {
		return "a generated response.", nil
	}
	return m.generated, nil
}

func (m *mockModelRepo) DescribeImage(ctx context.Context, imageURL string) (string, error) {
	return m.described, nil
}

type mockRecordRepo struct {
	mu      sync.Mutex
	records map[string]*domain.ExecutionRecord
	hasErr  error
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[string]*domain.ExecutionRecord)}
}

func (m *mockRecordRepo) HasRecord(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasErr != nil {
		return false, m.hasErr
	}
	_, ok := m.records[id]
	return ok, nil
}

func (m *mockRecordRepo) SaveRecord(ctx context.Context, rec *domain.ExecutionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return nil // first record wins
	}
	m.records[rec.ID] = rec
	return nil
}

func (m *mockRecordRepo) RecentRecords(ctx context.Context, limit int) ([]*domain.ExecutionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ExecutionRecord
	for _, rec := range m.records {
		out = append(out, rec)
	}
	return out, nil
}

type mockCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: make(map[string]string)}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *mockCacheRepo) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *mockCacheRepo) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
