package handlers

import (
	"github.com/gin-gonic/gin"

	"greychat/middleware"
	"greychat/utils"
)

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type UpdateImageRequest struct {
	Image string `json:"image" binding:"required"`
}

// GetAllUsers lists everyone except the caller, for the "find people"
// screen.
func (h *Handler) GetAllUsers(c *gin.Context) {
	userID := middleware.GetUserID(c)

	users, err := h.queries.ListOtherUsers(c.Request.Context(), userID)
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, users)
}

// GetUser returns a single profile, for chat-room headers.
func (h *Handler) GetUser(c *gin.Context) {
	profile, err := h.queries.UserDetails(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, profile)
}

func (h *Handler) UpdateName(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.users.UpdateName(c.Request.Context(), userID, req.Name); err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, nil)
}

// UpdateImage points the caller's profile at a previously uploaded blob.
func (h *Handler) UpdateImage(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.users.UpdateImage(c.Request.Context(), userID, req.Image); err != nil {
		utils.StoreError(c, err)
		return
	}
	utils.Success(c, nil)
}
