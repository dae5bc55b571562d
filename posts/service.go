package posts

import (
	"context"
	"fmt"

	"github.com/user/lichen-go/apperror"
)

// feedLimit caps how many posts a single feed read returns.
const feedLimit = 50

// PostService contains the business logic for posts, follows, and the feed.
type PostService struct {
	store PostStore
}

// NewPostService creates a new PostService.
func NewPostService(store PostStore) *PostService {
	return &PostService{store: store}
}

// CreatePost stores a post owned by userID. Content arrives validated for
// presence only; it is persisted exactly as supplied.
func (s *PostService) CreatePost(ctx context.Context, userID int, req CreatePostRequest) (*CreatePostResponse, error) {
	post, err := s.store.InsertPost(ctx, userID, req.Content)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return &CreatePostResponse{
		ID:        post.ID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
	}, nil
}

// Feed returns up to feedLimit posts from users that userID follows, newest
// first. The caller's own posts only appear if the caller follows themself;
// there is no self-follow special case in either direction.
func (s *PostService) Feed(ctx context.Context, userID int) ([]Post, error) {
	feed, err := s.store.ListFeed(ctx, userID, feedLimit)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to load feed", err)
	}
	if feed == nil {
		// An empty feed serializes as [] rather than null.
		feed = []Post{}
	}
	return feed, nil
}

// Follow records that userID follows targetID. The target id is not checked
// against existing users, so following a nonexistent id succeeds; such an
// edge simply never contributes posts to the feed. Re-following is
// idempotent.
func (s *PostService) Follow(ctx context.Context, userID, targetID int) (*FollowAck, error) {
	if err := s.store.CreateFollow(ctx, userID, targetID); err != nil {
		return nil, apperror.NewDatabaseError("failed to create follow", err)
	}
	return &FollowAck{Msg: fmt.Sprintf("you are now following user %d", targetID)}, nil
}
