package handlers

import (
	"github.com/gin-gonic/gin"

	"greychat/middleware"
	"greychat/models"
	"greychat/utils"
)

type PostStatusRequest struct {
	Text  string            `json:"text"`
	Media []models.MediaRef `json:"media"`
}

// PostStatus publishes a status under the caller's name. Visibility is
// decided at read time by the feed, never stored with the post.
func (h *Handler) PostStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	statusID, err := h.statuses.Post(c.Request.Context(), userID, req.Text, req.Media)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, gin.H{"status_id": statusID})
}

// GetFeed returns the statuses of the caller's confirmed friends, newest
// first.
func (h *Handler) GetFeed(c *gin.Context) {
	userID := middleware.GetUserID(c)

	feed, err := h.statuses.FeedFor(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, feed)
}
