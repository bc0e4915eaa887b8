package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-planner/api-go/models"
)

func TestSubscribe(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Marathon")

	subscription, err := ss.Subscribe(bob.ID, post.ID)
	require.NoError(t, err)
	assert.Empty(t, subscription.AttendanceStatus)

	fetched, err := ss.Get(subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, fetched.UserID)
	assert.Equal(t, post.ID, fetched.PostID)
}

func TestSubscribeDuplicateFails(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Marathon")

	first, err := ss.Subscribe(bob.ID, post.ID)
	require.NoError(t, err)

	_, err = ss.Subscribe(bob.ID, post.ID)
	require.ErrorIs(t, err, ErrDuplicateSubscription)

	// The first subscription is untouched and retrievable.
	fetched, err := ss.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, fetched.ID)

	var rows int64
	db.Model(&models.Subscription{}).Where("post_id = ?", post.ID).Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestSubscribeMissingPost(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")

	_, err := ss.Subscribe(alice.ID, uuid.New())
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestSetAttendance(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Marathon")

	subscription, err := ss.Subscribe(bob.ID, post.ID)
	require.NoError(t, err)

	_, err = ss.SetAttendance(subscription.ID, "")
	require.ErrorIs(t, err, ErrMissingStatus)

	updated, err := ss.SetAttendance(subscription.ID, models.AttendanceConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceConfirmed, updated.AttendanceStatus)

	fetched, err := ss.Get(subscription.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceConfirmed, fetched.AttendanceStatus)
}

func TestSetAttendanceIsPermissive(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Marathon")

	subscription, err := ss.Subscribe(alice.ID, post.ID)
	require.NoError(t, err)

	// Open status set: arbitrary values pass, and cancelled is not terminal.
	_, err = ss.SetAttendance(subscription.ID, models.AttendanceCancelled)
	require.NoError(t, err)
	updated, err := ss.SetAttendance(subscription.ID, "maybe-later")
	require.NoError(t, err)
	assert.Equal(t, "maybe-later", updated.AttendanceStatus)
}

func TestUnsubscribe(t *testing.T) {
	db := testDB(t)
	ss := NewSubscriptionService(db)
	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Marathon")

	subscription, err := ss.Subscribe(alice.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, ss.Unsubscribe(subscription.ID))
	require.ErrorIs(t, ss.Unsubscribe(subscription.ID), ErrSubscriptionNotFound)

	_, err = ss.Get(subscription.ID)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}
