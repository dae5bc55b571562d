// Data Transfer Objects for the posts endpoints.
package posts

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// CreatePostRequest represents the create-post payload.
type CreatePostRequest struct {
	Content string `json:"content" example:"hello"`
}

// Validate requires content to be present. Length is deliberately not
// bounded; the store accepts content as-is.
func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

// CreatePostResponse echoes the stored post back to its author. The owner is
// implied by the token that created it, so user_id is not repeated here.
type CreatePostResponse struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FollowAck acknowledges a follow, echoing the target id in the message.
type FollowAck struct {
	Msg string `json:"msg" example:"you are now following user 2"`
}
