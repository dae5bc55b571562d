package posts

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lichen-go/auth"
	"github.com/user/lichen-go/config"
)

// newTestApp assembles the router exactly as main does, with in-memory
// stores in place of Postgres.
func newTestApp(t *testing.T) (*httptest.Server, *MockPostStore) {
	t.Helper()

	codec := auth.NewTokenCodec(config.AuthConfig{
		SecretKey:           "test-secret",
		AccessTokenDuration: 15 * time.Minute,
	})
	authService := auth.NewAuthService(auth.NewMockUserStore(), codec)
	authHandlers := auth.NewHandlers(authService)

	postStore := NewMockPostStore()
	postHandlers := NewPostHandlers(NewPostService(postStore))

	r := chi.NewRouter()
	r.Post("/register", authHandlers.HandleRegister())
	r.Post("/login", authHandlers.HandleLogin())
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionGuard(codec))
		r.Post("/posts", postHandlers.HandleCreatePost())
		r.Get("/feed", postHandlers.HandleFeed())
		r.Post("/follow/{target_id}", postHandlers.HandleFollow())
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, postStore
}

func registerUser(t *testing.T, ts *httptest.Server, username string) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "pw-" + username,
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", "pw-"+username)

	resp, err := http.Post(ts.URL+"/login", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr auth.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.AccessToken)
	return tr.AccessToken
}

func doAuthed(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

// Full flow: register alice and bob, bob posts, alice follows bob, alice's
// feed contains exactly bob's post.
func TestFollowAndFeedFlow(t *testing.T) {
	ts, _ := newTestApp(t)

	registerUser(t, ts, "alice")
	registerUser(t, ts, "bob")
	aliceToken := loginUser(t, ts, "alice")
	bobToken := loginUser(t, ts, "bob")

	resp := doAuthed(t, http.MethodPost, ts.URL+"/posts", bobToken, map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created CreatePostResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, "hello", created.Content)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	// alice registered first, bob second; ids come from the store in order.
	resp = doAuthed(t, http.MethodPost, ts.URL+"/follow/2", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ack FollowAck
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
	resp.Body.Close()
	assert.Contains(t, ack.Msg, "2")

	resp = doAuthed(t, http.MethodGet, ts.URL+"/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	resp.Body.Close()

	require.Len(t, feed, 1)
	assert.Equal(t, "hello", feed[0].Content)
	assert.Equal(t, 2, feed[0].UserID)

	// Bob's own feed stays empty: he follows no one.
	resp = doAuthed(t, http.MethodGet, ts.URL+"/feed", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.JSONEq(t, "[]", string(body))
}

func TestFollowNonexistentUser(t *testing.T) {
	ts, _ := newTestApp(t)

	registerUser(t, ts, "alice")
	token := loginUser(t, ts, "alice")

	resp := doAuthed(t, http.MethodPost, ts.URL+"/follow/999999", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doAuthed(t, http.MethodGet, ts.URL+"/feed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var feed []Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	resp.Body.Close()
	assert.Empty(t, feed)
}

func TestFollowBadTarget(t *testing.T) {
	ts, _ := newTestApp(t)

	registerUser(t, ts, "alice")
	token := loginUser(t, ts, "alice")

	resp := doAuthed(t, http.MethodPost, ts.URL+"/follow/not-a-number", token, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts, _ := newTestApp(t)

	for _, c := range []struct {
		method, path string
	}{
		{http.MethodPost, "/posts"},
		{http.MethodGet, "/feed"},
		{http.MethodPost, "/follow/1"},
	} {
		req, err := http.NewRequest(c.method, ts.URL+c.path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", c.method, c.path)
	}
}

func TestCreatePostRequiresContent(t *testing.T) {
	ts, _ := newTestApp(t)

	registerUser(t, ts, "alice")
	token := loginUser(t, ts, "alice")

	resp := doAuthed(t, http.MethodPost, ts.URL+"/posts", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
