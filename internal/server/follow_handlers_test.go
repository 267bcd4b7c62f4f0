package server

import (
	"net/http"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAuthorIsIdempotentOverHTTP(t *testing.T) {
	srv, app, db := setupTestServer(t)
	createAuthedUser(t, srv, db, "author")
	_, readerToken := createAuthedUser(t, srv, db, "reader")

	for i := 0; i < 2; i++ {
		resp := doRequest(t, app, http.MethodPost, "/profile/author/follow", readerToken, nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/profile/author", resp.Header.Get("Location"))
		_ = resp.Body.Close()
	}

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowYourselfIsANoOp(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createAuthedUser(t, srv, db, "narcissus")

	resp := doRequest(t, app, http.MethodPost, "/profile/narcissus/follow", token, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/narcissus", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowUnknownAuthor(t *testing.T) {
	srv, app, db := setupTestServer(t)
	_, token := createAuthedUser(t, srv, db, "reader")

	resp := doRequest(t, app, http.MethodPost, "/profile/ghost/follow", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestUnfollowRemovesOnlyCallersSubscription(t *testing.T) {
	srv, app, db := setupTestServer(t)
	author, _ := createAuthedUser(t, srv, db, "author")
	first, firstToken := createAuthedUser(t, srv, db, "first")
	second, _ := createAuthedUser(t, srv, db, "second")

	require.NoError(t, db.Exec(
		"INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		first.ID, author.ID).Error)
	require.NoError(t, db.Exec(
		"INSERT INTO follows (user_id, author_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		second.ID, author.ID).Error)

	resp := doRequest(t, app, http.MethodPost, "/profile/author/unfollow", firstToken, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	_ = resp.Body.Close()

	var remaining []models.Follow
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, second.ID, remaining[0].UserID)
}

func TestFollowRequiresLogin(t *testing.T) {
	srv, app, db := setupTestServer(t)
	createAuthedUser(t, srv, db, "author")

	resp := doRequest(t, app, http.MethodPost, "/profile/author/follow", "", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "/auth/login?next=")
	_ = resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
