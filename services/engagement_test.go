package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-planner/api-go/models"
)

func TestAddLikeIncrementsCounter(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Picnic")

	like, err := es.AddLike(alice.ID, post.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, like.ID)
	assert.Equal(t, 1, likeCount(t, db, post.ID))
}

func TestAddLikeDuplicateFails(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Picnic")

	_, err := es.AddLike(alice.ID, post.ID)
	require.NoError(t, err)

	_, err = es.AddLike(alice.ID, post.ID)
	require.ErrorIs(t, err, ErrDuplicateLike)

	// Exactly one row survives and the counter agrees.
	var rows int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&rows)
	assert.EqualValues(t, 1, rows)
	assert.Equal(t, 1, likeCount(t, db, post.ID))
}

func TestAddLikeMissingPost(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")

	_, err := es.AddLike(alice.ID, uuid.New())
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestRemoveLikeDecrementsCounter(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Picnic")

	like, err := es.AddLike(alice.ID, post.ID)
	require.NoError(t, err)
	require.Equal(t, 1, likeCount(t, db, post.ID))

	require.NoError(t, es.RemoveLike(like.ID))
	assert.Equal(t, 0, likeCount(t, db, post.ID))

	require.ErrorIs(t, es.RemoveLike(like.ID), ErrLikeNotFound)
}

func TestCounterMatchesRowsAfterSequence(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	owner := createUser(t, db, "owner")
	post := createPost(t, db, owner, "Concert")

	users := []models.User{
		createUser(t, db, "u1"),
		createUser(t, db, "u2"),
		createUser(t, db, "u3"),
	}

	var likeIDs []uuid.UUID
	for _, u := range users {
		like, err := es.AddLike(u.ID, post.ID)
		require.NoError(t, err)
		likeIDs = append(likeIDs, like.ID)
	}
	require.NoError(t, es.RemoveLike(likeIDs[1]))

	var rows int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&rows)
	assert.EqualValues(t, rows, likeCount(t, db, post.ID))
	assert.Equal(t, 2, likeCount(t, db, post.ID))
}

func TestLikeCounterNeverNegative(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Picnic")

	// Counter already at zero; a stray like row must not push it below.
	like := models.Like{UserID: alice.ID, PostID: post.ID}
	require.NoError(t, db.Create(&like).Error)

	require.NoError(t, es.RemoveLike(like.ID))
	assert.Equal(t, 0, likeCount(t, db, post.ID))
}

func TestAddCommentIncrementsCounter(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Picnic")

	// No uniqueness rule: the same user may comment repeatedly.
	_, err := es.AddComment(bob.ID, post.ID, "first")
	require.NoError(t, err)
	comment, err := es.AddComment(bob.ID, post.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, 2, commentCount(t, db, post.ID))

	require.NoError(t, es.RemoveComment(comment.ID))
	assert.Equal(t, 1, commentCount(t, db, post.ID))

	var rows int64
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&rows)
	assert.EqualValues(t, rows, commentCount(t, db, post.ID))
}

func TestAddCommentRequiresBody(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Picnic")

	_, err := es.AddComment(alice.ID, post.ID, "")
	require.ErrorIs(t, err, ErrMissingBody)
	assert.Equal(t, 0, commentCount(t, db, post.ID))
}

func TestHasLiked(t *testing.T) {
	db := testDB(t)
	es := NewEngagementService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Picnic")

	_, err := es.AddLike(bob.ID, post.ID)
	require.NoError(t, err)

	liked, err := es.HasLiked(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = es.HasLiked(alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}
