// HTTP handlers for the posts endpoints. All of them run behind the session
// guard, so the authenticated user id is always present in the request
// context by the time they execute.
package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/lichen-go/apperror"
	"github.com/user/lichen-go/auth"
)

// PostHandlers wraps the PostService to provide HTTP handlers.
type PostHandlers struct {
	service *PostService
}

// NewPostHandlers creates a new PostHandlers instance.
func NewPostHandlers(service *PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleCreatePost godoc
// @Summary Create Post
// @Description Creates a post owned by the authenticated user.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post content"
// @Success 201 {object} posts.CreatePostResponse "Post created"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - Invalid input"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /posts [post]
func (h *PostHandlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := req.Validate(); err != nil {
			auth.WriteError(w, r, apperror.NewValidationError(err.Error(), nil))
			return
		}

		resp, err := h.service.CreatePost(r.Context(), userID, req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusCreated, resp)
	}
}

// HandleFeed godoc
// @Summary Read Feed
// @Description Returns up to 50 posts by followed users, newest first.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} posts.Post "Feed posts"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /feed [get]
func (h *PostHandlers) HandleFeed() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
			return
		}

		feed, err := h.service.Feed(r.Context(), userID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, feed)
	}
}

// HandleFollow godoc
// @Summary Follow User
// @Description Records a follow edge from the authenticated user to the target id.
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param target_id path int true "Target user id"
// @Success 200 {object} posts.FollowAck "Follow recorded"
// @Failure 400 {object} apperror.ErrorResponse "Bad Request - target_id is not an integer"
// @Failure 401 {object} apperror.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /follow/{target_id} [post]
func (h *PostHandlers) HandleFollow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.GetUserIDFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("user id not found in context", nil))
			return
		}

		targetID, err := strconv.Atoi(chi.URLParam(r, "target_id"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("target_id must be an integer", err))
			return
		}

		ack, err := h.service.Follow(r.Context(), userID, targetID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, ack)
	}
}
