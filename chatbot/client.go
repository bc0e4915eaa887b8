package chatbot

import (
	"errors"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/geo-planner/api-go/models"
)

// FallbackReply is returned whenever the upstream generative service fails;
// assistant errors never propagate to the API caller.
const FallbackReply = "Sorry, the assistant is not available right now. Please try again later."

// Client proxies conversation context to an external generative-text service
// (Gemini-style generateContent API).
type Client struct {
	http  *resty.Client
	model string
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func NewClient() *Client {
	baseURL := os.Getenv("CHATBOT_API_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	model := os.Getenv("CHATBOT_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetQueryParam("key", os.Getenv("CHATBOT_API_KEY"))
	return &Client{http: http, model: model}
}

// Generate sends the conversation window upstream and returns the reply text.
func (c *Client) Generate(history []models.ConversationMessage) (string, error) {
	req := generateRequest{}
	for _, msg := range history {
		role := "user"
		if msg.Sender == models.SenderBot {
			role = "model"
		}
		req.Contents = append(req.Contents, content{
			Role:  role,
			Parts: []contentPart{{Text: msg.Body}},
		})
	}

	var result generateResponse
	resp, err := c.http.R().
		SetBody(&req).
		SetResult(&result).
		Post("/models/" + c.model + ":generateContent")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", errors.New("chatbot service returned " + resp.Status())
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("chatbot service returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
