package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/geo-planner/api-go/chatbot"
	"github.com/geo-planner/api-go/models"
	"github.com/geo-planner/api-go/utils"
)

// contextWindow caps how much history is forwarded upstream per request.
const contextWindow = 20

type ChatController struct {
	DB  *gorm.DB
	Bot *chatbot.Client
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

func NewChatController(db *gorm.DB, bot *chatbot.Client) *ChatController {
	return &ChatController{DB: db, Bot: bot}
}

// SendMessage godoc
// @Summary Talk to the assistant
// @Description Appends the message to the caller's log, forwards the recent
// window to the generative service and returns the reply; upstream failures
// degrade to a fixed fallback answer
// @Tags chat
// @Accept json
// @Produce json
// @Success 200 {object} models.ConversationMessage
// @Router /chat [post]
func (cc *ChatController) SendMessage(c *gin.Context) {
	user := utils.GetUser(c)
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userMessage := models.ConversationMessage{
		UserID:    user.UserID,
		Sender:    models.SenderUser,
		Body:      req.Message,
		CreatedAt: time.Now(),
	}
	if err := cc.DB.Create(&userMessage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store message"})
		return
	}

	// Most recent window, oldest first for the upstream call.
	var history []models.ConversationMessage
	if err := cc.DB.Where("user_id = ?", user.UserID).
		Order("created_at DESC").
		Limit(contextWindow).
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	reply, err := cc.Bot.Generate(history)
	if err != nil {
		log.Printf("chatbot call failed: %v", err)
		reply = chatbot.FallbackReply
	}

	botMessage := models.ConversationMessage{
		UserID:    user.UserID,
		Sender:    models.SenderBot,
		Body:      reply,
		CreatedAt: time.Now(),
	}
	if err := cc.DB.Create(&botMessage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reply"})
		return
	}

	c.JSON(http.StatusOK, botMessage)
}

// GetHistory godoc
// @Summary Read the caller's conversation log
// @Tags chat
// @Produce json
// @Success 200 {array} models.ConversationMessage
// @Router /chat/history [get]
func (cc *ChatController) GetHistory(c *gin.Context) {
	user := utils.GetUser(c)

	var messages []models.ConversationMessage
	if err := cc.DB.Where("user_id = ?", user.UserID).
		Order("created_at").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching history"})
		return
	}
	c.JSON(http.StatusOK, messages)
}
