package handlers

import (
	"github.com/gin-gonic/gin"

	"greychat/middleware"
	"greychat/models"
	"greychat/utils"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=text image"`
	Text        string `json:"text"`
	ImageRef    string `json:"image_ref"`
}

type DeleteMessagesRequest struct {
	MessageIDs []string `json:"message_ids"`
}

// SendMessage appends one message from the caller to the recipient.
// Messaging is limited to confirmed friends.
func (h *Handler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	isFriend, err := h.relationships.AreFriends(c.Request.Context(), userID, req.RecipientID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	if !isFriend {
		utils.Forbidden(c, "can only message friends")
		return
	}

	messageID, err := h.messages.Append(c.Request.Context(), userID, req.RecipientID, models.MessageBody{
		Kind:     models.MessageKind(req.Kind),
		Text:     req.Text,
		ImageRef: req.ImageRef,
	})
	if err != nil {
		utils.StoreError(c, err)
		return
	}

	h.metrics.MessagesSent.WithLabelValues(c.FullPath()).Inc()
	utils.Success(c, gin.H{"message_id": messageID})
}

// GetConversation returns the full message history between the caller and
// :user_id, oldest first.
func (h *Handler) GetConversation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	otherID := c.Param("user_id")

	messages, err := h.messages.ListConversation(c.Request.Context(), userID, otherID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, messages)
}

func (h *Handler) DeleteMessages(c *gin.Context) {
	var req DeleteMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	deleted, err := h.messages.DeleteMany(c.Request.Context(), req.MessageIDs)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, gin.H{"deleted": deleted})
}
