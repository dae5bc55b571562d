package posts

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MockPostStore simulates the posts and follows tables for testing.
type MockPostStore struct {
	mu      sync.Mutex
	posts   []Post
	follows map[int]map[int]bool // follower -> following set
	nextID  int

	// FailWith, when set, is returned from every method.
	FailWith error
}

// NewMockPostStore initializes an empty mock store.
func NewMockPostStore() *MockPostStore {
	return &MockPostStore{
		follows: make(map[int]map[int]bool),
		nextID:  1,
	}
}

func (m *MockPostStore) InsertPost(_ context.Context, userID int, content string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	post := Post{
		ID:        m.nextID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.posts = append(m.posts, post)
	return &post, nil
}

func (m *MockPostStore) ListFeed(_ context.Context, userID int, limit int) ([]Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	followed := m.follows[userID]
	var feed []Post
	for _, p := range m.posts {
		if followed[p.UserID] {
			feed = append(feed, p)
		}
	}
	// Newest first; id breaks timestamp ties so results are stable even when
	// the clock does not advance between inserts.
	sort.Slice(feed, func(i, j int) bool {
		if feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].ID > feed[j].ID
		}
		return feed[i].CreatedAt.After(feed[j].CreatedAt)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

func (m *MockPostStore) CreateFollow(_ context.Context, followerID, followingID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.follows[followerID] == nil {
		m.follows[followerID] = make(map[int]bool)
	}
	m.follows[followerID][followingID] = true
	return nil
}

// FollowCount reports how many follow edges followerID holds; used by tests
// asserting idempotency.
func (m *MockPostStore) FollowCount(followerID int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.follows[followerID])
}
