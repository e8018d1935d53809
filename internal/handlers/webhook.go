package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopbot-backend/internal/platform/logger"
	"github.com/yungbote/shopbot-backend/internal/services"
)

// SkillRequest is the subset of the Kakao skill webhook payload the bot
// reads. Missing fields decode to empty strings rather than erroring.
type SkillRequest struct {
	UserRequest struct {
		Utterance string `json:"utterance"`
		User      struct {
			ID string `json:"id"`
		} `json:"user"`
	} `json:"userRequest"`
}

type WebhookHandler struct {
	conversation services.Conversation
	log          *logger.Logger
}

func NewWebhookHandler(conversation services.Conversation, baseLog *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		conversation: conversation,
		log:          baseLog.With("handler", "WebhookHandler"),
	}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	var req SkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("webhook payload undecodable", "error", err)
		RespondSkillText(c, "죄송합니다. 요청을 처리하지 못했습니다.")
		return
	}

	userID := req.UserRequest.User.ID
	if userID == "" {
		h.log.Warn("webhook payload has no user id")
		RespondSkillText(c, "죄송합니다. 요청을 처리하지 못했습니다.")
		return
	}

	reply := h.conversation.HandleTurn(c.Request.Context(), userID, req.UserRequest.Utterance)
	RespondSkillText(c, reply)
}
