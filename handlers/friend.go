package handlers

import (
	"github.com/gin-gonic/gin"

	"greychat/middleware"
	"greychat/utils"
)

type FriendRequestBody struct {
	UserID string `json:"user_id" binding:"required"`
}

// SendFriendRequest proposes a friendship from the caller to the given
// user. Self-requests and duplicates in either direction are rejected by
// the relationship store.
func (h *Handler) SendFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req FriendRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.relationships.SendRequest(c.Request.Context(), userID, req.UserID); err != nil {
		utils.StoreError(c, err)
		return
	}

	h.metrics.FriendRequests.WithLabelValues(c.FullPath()).Inc()
	utils.Success(c, gin.H{"message": "friend request sent"})
}

func (h *Handler) GetFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.relationships.ListIncoming(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, requests)
}

func (h *Handler) GetSentFriendRequests(c *gin.Context) {
	userID := middleware.GetUserID(c)

	requests, err := h.relationships.ListOutgoing(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, requests)
}

// AcceptFriendRequest confirms the pending request from :user_id to the
// caller.
func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	senderID := c.Param("user_id")

	if err := h.relationships.Accept(c.Request.Context(), senderID, userID); err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "friend request accepted"})
}

// RejectFriendRequest discards the pending request from :user_id to the
// caller.
func (h *Handler) RejectFriendRequest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	senderID := c.Param("user_id")

	if err := h.relationships.Reject(c.Request.Context(), senderID, userID); err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "friend request rejected"})
}

func (h *Handler) GetFriends(c *gin.Context) {
	userID := middleware.GetUserID(c)

	friends, err := h.relationships.ListFriends(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, friends)
}

// GetFriendIDs returns the caller's friend set as bare ids, for clients
// that only need membership checks.
func (h *Handler) GetFriendIDs(c *gin.Context) {
	userID := middleware.GetUserID(c)

	ids, err := h.queries.FriendIDs(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, ids)
}
