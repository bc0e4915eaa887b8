package controllers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/storage"
)

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testDB(t)

	r := newTestRouter()
	ac := NewAuthController(db)
	r.POST("/api/register", ac.Register)

	payload := map[string]interface{}{
		"username":  "ana",
		"email":     "ana@x.com",
		"password":  "secret1",
		"firstName": "Ana",
		"lastName":  "Diaz",
	}
	w := doJSON(t, r, "POST", "/api/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same username, different email: still a conflict.
	payload["email"] = "other@x.com"
	w = doJSON(t, r, "POST", "/api/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	var users int64
	db.Model(&models.User{}).Where("username = ?", "ana").Count(&users)
	assert.EqualValues(t, 1, users)
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	db := testDB(t)

	r := newTestRouter()
	ac := NewAuthController(db)
	r.POST("/api/register", ac.Register)

	w := doJSON(t, r, "POST", "/api/register", map[string]interface{}{
		"username":  "1invalid",
		"email":     "x@x.com",
		"password":  "secret1",
		"firstName": "A",
		"lastName":  "B",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testDB(t)
	media := storage.NewLocalStore(t.TempDir())

	ana := seedUser(t, db, "ana")
	luis := seedUser(t, db, "luis")

	// Ana owns a post with a location and an image; Luis engages with it.
	post := models.Post{
		UserID:    ana.ID,
		Title:     "Gallery night",
		Capacity:  30,
		EventDate: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.Location{
		OwnerKind: models.OwnerKindPost,
		OwnerID:   post.ID,
		Latitude:  10.5,
		Longitude: -71.6,
	}).Error)

	imageKey, err := media.Save("posts/"+post.ID.String()+"/a.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.PostImage{PostID: post.ID, URL: imageKey}).Error)

	require.NoError(t, db.Create(&models.Like{UserID: luis.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Model(&post).Update("like_count", 1).Error)

	// Ana also has an activity with a location, a profile image, and a like
	// on Luis's post.
	activity := models.Activity{UserID: ana.ID, Title: "Yoga", ActivityDate: time.Now(), CreatedAt: time.Now()}
	require.NoError(t, db.Create(&activity).Error)
	require.NoError(t, db.Create(&models.Location{
		OwnerKind: models.OwnerKindActivity,
		OwnerID:   activity.ID,
		Latitude:  1,
		Longitude: 2,
	}).Error)

	profileKey, err := media.Save("profiles/"+ana.ID.String()+"/p.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&ana).Update("profile_image", profileKey).Error)

	luisPost := models.Post{
		UserID:    luis.ID,
		Title:     "Jam session",
		Capacity:  5,
		EventDate: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&luisPost).Error)
	require.NoError(t, db.Create(&models.Like{UserID: ana.ID, PostID: luisPost.ID}).Error)
	require.NoError(t, db.Model(&luisPost).Update("like_count", 1).Error)

	r := newTestRouter()
	uc := NewUserController(db, media)
	api := r.Group("/api", fakeAuth(ana.ID))
	api.DELETE("/users/:id", uc.DeleteUser)

	w := doJSON(t, r, "DELETE", "/api/users/"+ana.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Every owned row is gone, including locations across both owner kinds.
	var count int64
	db.Model(&models.User{}).Where("id = ?", ana.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Post{}).Where("user_id = ?", ana.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Activity{}).Where("user_id = ?", ana.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Location{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)

	// Luis's post counter reflects Ana's removed like.
	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, "id = ?", luisPost.ID).Error)
	assert.Equal(t, 0, refreshed.LikeCount)

	// Stored files were purged best-effort.
	exists, err := media.Exists(profileKey)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = media.Exists(imageKey)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSetAttendanceOverHTTP(t *testing.T) {
	db := testDB(t)
	ana := seedUser(t, db, "ana")
	post := models.Post{
		UserID:    ana.ID,
		Title:     "Talk",
		Capacity:  100,
		EventDate: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
	require.NoError(t, db.Create(&post).Error)

	r := newTestRouter()
	sc := NewSubscriptionController(db)
	api := r.Group("/api", fakeAuth(ana.ID))
	api.POST("/subscriptions", sc.Subscribe)
	api.PATCH("/subscriptions/:id", sc.SetAttendance)
	api.GET("/subscriptions/:id", sc.GetSubscription)

	w := doJSON(t, r, "POST", "/api/subscriptions", map[string]interface{}{"postId": post.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Subscription
	decodeBody(t, w, &created)

	// Duplicate enrollment is a conflict.
	w = doJSON(t, r, "POST", "/api/subscriptions", map[string]interface{}{"postId": post.ID})
	require.Equal(t, http.StatusConflict, w.Code)

	// Missing status is a validation error.
	w = doJSON(t, r, "PATCH", "/api/subscriptions/"+created.ID.String(), map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "PATCH", "/api/subscriptions/"+created.ID.String(), map[string]interface{}{
		"attendanceStatus": "confirmed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/api/subscriptions/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched models.Subscription
	decodeBody(t, w, &fetched)
	assert.Equal(t, "confirmed", fetched.AttendanceStatus)
}
