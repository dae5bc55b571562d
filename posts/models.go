// Package posts is responsible for the social surface of the service:
// creating posts, following other users, and reading the feed of posts
// authored by followed users.
package posts

import "time"

// Post represents a short text message as stored in the database.
// Posts are immutable once created and are never deleted.
type Post struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
