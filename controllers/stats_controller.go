package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/stat"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/geocode"
	"github.com/geo-planner/api-go/models"
)

// StatsController aggregates the admin dashboard numbers: counts by category,
// status and month, most-used venues, and two linear trend fits.
type StatsController struct {
	DB       *gorm.DB
	Geocoder *geocode.Geocoder
}

func NewStatsController(db *gorm.DB, geocoder *geocode.Geocoder) *StatsController {
	return &StatsController{DB: db, Geocoder: geocoder}
}

type categoryCount struct {
	Category string
	Total    int64
}

type statusCount struct {
	Status string
	Total  int64
}

type locationCount struct {
	Latitude  float64
	Longitude float64
	Total     int64
}

// linearFit runs an ordinary least-squares fit and returns the fitted value
// for every x. Degenerate inputs (fewer than two points, zero variance in x)
// fall back to a flat line at the mean so the payload never carries NaN.
func linearFit(xs, ys []float64) []float64 {
	if len(xs) == 0 {
		return []float64{}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		mean := stat.Mean(ys, nil)
		alpha, beta = mean, 0
	}

	fitted := make([]float64, len(xs))
	for i, x := range xs {
		fitted[i] = alpha + beta*x
	}
	return fitted
}

// monthBuckets counts users registered per calendar month (January = index 0).
func monthBuckets(users []models.User) []int {
	buckets := make([]int, 12)
	for _, u := range users {
		buckets[int(u.CreatedAt.Month())-1]++
	}
	return buckets
}

// GetStatistics godoc
// @Summary Admin dashboard statistics
// @Tags statistics
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /statistics [get]
func (sc *StatsController) GetStatistics(c *gin.Context) {
	// Events by category, with display names.
	var categories []categoryCount
	sc.DB.Model(&models.Post{}).
		Select("category, count(id) as total").
		Group("category").
		Order("total DESC").
		Scan(&categories)
	categoriesMap := map[string]int64{}
	for _, row := range categories {
		name, ok := models.CategoryNames[row.Category]
		if !ok {
			name = row.Category
		}
		categoriesMap[name] = row.Total
	}

	// Subscriptions by the category of the subscribed post.
	var subscriptionCategories []categoryCount
	sc.DB.Model(&models.Subscription{}).
		Select("posts.category as category, count(subscriptions.id) as total").
		Joins("JOIN posts ON posts.id = subscriptions.post_id").
		Group("posts.category").
		Order("total DESC").
		Scan(&subscriptionCategories)
	subscriptionCategoriesMap := map[string]int64{}
	for _, row := range subscriptionCategories {
		name, ok := models.CategoryNames[row.Category]
		if !ok {
			name = row.Category
		}
		subscriptionCategoriesMap[name] = row.Total
	}

	// Events by status.
	var statuses []statusCount
	sc.DB.Model(&models.Post{}).
		Select("status, count(id) as total").
		Group("status").
		Scan(&statuses)
	statusesMap := map[string]int64{}
	for _, row := range statuses {
		statusesMap[row.Status] = row.Total
	}

	// Users registered per month, plus the growth trend over the 12 buckets.
	var users []models.User
	sc.DB.Find(&users)
	usersByMonth := monthBuckets(users)

	months := make([]float64, 12)
	monthLabels := make([]int, 12)
	actuals := make([]float64, 12)
	for i := 0; i < 12; i++ {
		months[i] = float64(i + 1)
		monthLabels[i] = i + 1
		actuals[i] = float64(usersByMonth[i])
	}
	userGrowth := linearFit(months, actuals)

	// Most-used venues, reverse-geocoded to a readable label.
	var locations []locationCount
	sc.DB.Model(&models.Location{}).
		Select("latitude, longitude, count(id) as total").
		Group("latitude, longitude").
		Scan(&locations)
	locationsMap := map[string]int64{}
	for _, row := range locations {
		label := sc.Geocoder.ReverseLookup(row.Latitude, row.Longitude)
		locationsMap[label] = row.Total
	}

	var totalUsers, totalEvents int64
	sc.DB.Model(&models.User{}).Count(&totalUsers)
	sc.DB.Model(&models.Post{}).Count(&totalEvents)

	// Likes vs subscriptions per post, with a trend fit across posts.
	var posts []models.Post
	sc.DB.Order("created_at").Find(&posts)
	likes := make([]float64, 0, len(posts))
	subscriptions := make([]float64, 0, len(posts))
	for _, post := range posts {
		var count int64
		sc.DB.Model(&models.Subscription{}).Where("post_id = ?", post.ID).Count(&count)
		likes = append(likes, float64(post.LikeCount))
		subscriptions = append(subscriptions, float64(count))
	}
	likesTrend := linearFit(likes, subscriptions)

	c.JSON(http.StatusOK, gin.H{
		"categories":              categoriesMap,
		"statuses":                statusesMap,
		"usersByMonth":            usersByMonth,
		"locations":               locationsMap,
		"subscriptionsByCategory": subscriptionCategoriesMap,
		"userGrowthRegression": gin.H{
			"months":      monthLabels,
			"actuals":     usersByMonth,
			"predictions": userGrowth,
		},
		"eventsVsUsers": gin.H{
			"users":  totalUsers,
			"events": totalEvents,
		},
		"likesVsSubscriptions": gin.H{
			"likes":         likes,
			"subscriptions": subscriptions,
			"predictions":   likesTrend,
		},
	})
}
