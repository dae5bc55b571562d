package posts

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostStore is the persistence boundary for posts and follow edges.
type PostStore interface {
	// InsertPost stores a post owned by userID; the returned Post carries the
	// store-generated id and creation timestamp.
	InsertPost(ctx context.Context, userID int, content string) (*Post, error)
	// ListFeed returns up to limit posts authored by users that userID
	// follows, newest first.
	ListFeed(ctx context.Context, userID int, limit int) ([]Post, error)
	// CreateFollow records a follow edge. Inserting an existing edge is a
	// silent no-op; the target is not checked for existence.
	CreateFollow(ctx context.Context, followerID, followingID int) error
}

// PgxPostStore implements PostStore against PostgreSQL.
type PgxPostStore struct {
	db *pgxpool.Pool
}

// NewPgxPostStore creates a PostStore backed by the given pool.
func NewPgxPostStore(db *pgxpool.Pool) *PgxPostStore {
	return &PgxPostStore{db: db}
}

func (s *PgxPostStore) InsertPost(ctx context.Context, userID int, content string) (*Post, error) {
	post := &Post{
		UserID:  userID,
		Content: content,
	}
	query := `INSERT INTO posts (user_id, content)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, userID, content).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PgxPostStore) ListFeed(ctx context.Context, userID int, limit int) ([]Post, error) {
	query := `SELECT p.id, p.content, p.user_id, p.created_at
	          FROM posts p
	          JOIN follows f ON p.user_id = f.following_id
	          WHERE f.follower_id = $1
	          ORDER BY p.created_at DESC
	          LIMIT $2`
	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Content, &p.UserID, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *PgxPostStore) CreateFollow(ctx context.Context, followerID, followingID int) error {
	query := `INSERT INTO follows (follower_id, following_id)
	          VALUES ($1, $2)
	          ON CONFLICT DO NOTHING`
	_, err := s.db.Exec(ctx, query, followerID, followingID)
	return err
}
