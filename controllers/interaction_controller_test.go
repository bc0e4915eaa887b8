package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-planner/api-go/models"
)

func TestLikeUnlikeFlow(t *testing.T) {
	db := testDB(t)
	ana := seedUser(t, db, "ana")
	luis := seedUser(t, db, "luis")
	post := models.Post{
		UserID:    luis.ID,
		Title:     "Food fair",
		Capacity:  200,
		EventDate: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&post).Error)

	r := newTestRouter()
	ic := NewInteractionController(db)
	api := r.Group("/api", fakeAuth(ana.ID))
	api.POST("/posts/:id/likes", ic.LikePost)
	api.DELETE("/likes/:id", ic.UnlikePost)

	w := doJSON(t, r, "POST", "/api/posts/"+post.ID.String()+"/likes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var like models.Like
	decodeBody(t, w, &like)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, "id = ?", post.ID).Error)
	assert.Equal(t, 1, refreshed.LikeCount)

	// Second like from the same user is a conflict.
	w = doJSON(t, r, "POST", "/api/posts/"+post.ID.String()+"/likes", nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "DELETE", "/api/likes/"+like.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&refreshed, "id = ?", post.ID).Error)
	assert.Equal(t, 0, refreshed.LikeCount)
}

func TestCommentFlow(t *testing.T) {
	db := testDB(t)
	ana := seedUser(t, db, "ana")
	post := models.Post{
		UserID:    ana.ID,
		Title:     "Lecture",
		Capacity:  40,
		EventDate: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&post).Error)

	r := newTestRouter()
	ic := NewInteractionController(db)
	api := r.Group("/api", fakeAuth(ana.ID))
	api.POST("/posts/:id/comments", ic.CommentPost)
	api.GET("/posts/:id/comments", ic.GetPostComments)
	api.DELETE("/comments/:id", ic.DeleteComment)

	w := doJSON(t, r, "POST", "/api/posts/"+post.ID.String()+"/comments", map[string]string{"body": "great plan"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	decodeBody(t, w, &comment)

	w = doJSON(t, r, "GET", "/api/posts/"+post.ID.String()+"/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []models.Comment
	decodeBody(t, w, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, "great plan", comments[0].Body)

	w = doJSON(t, r, "DELETE", "/api/comments/"+comment.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, "id = ?", post.ID).Error)
	assert.Equal(t, 0, refreshed.CommentCount)
}
