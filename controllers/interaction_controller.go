package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/services"
	"github.com/geo-planner/api-go/utils"
)

// InteractionController exposes likes and comments. Counter mutation lives
// entirely in the engagement service.
type InteractionController struct {
	Engagement *services.EngagementService
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{Engagement: services.NewEngagementService(db)}
}

// LikePost godoc
// @Summary Like a post
// @Description At most one like per user per post; duplicates are rejected
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 201 {object} models.Like
// @Router /posts/{id}/likes [post]
func (ic *InteractionController) LikePost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	like, err := ic.Engagement.AddLike(user.UserID, postID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, like)
}

// UnlikePost godoc
// @Summary Remove a like
// @Tags interactions
// @Param id path string true "Like ID"
// @Success 200 {object} map[string]interface{}
// @Router /likes/{id} [delete]
func (ic *InteractionController) UnlikePost(c *gin.Context) {
	likeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid like id"})
		return
	}

	if err := ic.Engagement.RemoveLike(likeID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetPostLikes godoc
// @Summary List a post's likes
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Like
// @Router /posts/{id}/likes [get]
func (ic *InteractionController) GetPostLikes(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	likes, err := ic.Engagement.ListLikes(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching likes"})
		return
	}
	c.JSON(http.StatusOK, likes)
}

// CommentPost godoc
// @Summary Comment on a post
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Success 201 {object} models.Comment
// @Router /posts/{id}/comments [post]
func (ic *InteractionController) CommentPost(c *gin.Context) {
	user := utils.GetUser(c)
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := ic.Engagement.AddComment(user.UserID, postID, req.Body)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags interactions
// @Param id path string true "Comment ID"
// @Success 200 {object} map[string]interface{}
// @Router /comments/{id} [delete]
func (ic *InteractionController) DeleteComment(c *gin.Context) {
	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	if err := ic.Engagement.RemoveComment(commentID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetPostComments godoc
// @Summary List a post's comments
// @Tags interactions
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func (ic *InteractionController) GetPostComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	comments, err := ic.Engagement.ListComments(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching comments"})
		return
	}
	c.JSON(http.StatusOK, comments)
}
