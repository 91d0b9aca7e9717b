package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"greychat/middleware"
)

// RegisterRoutes wires every endpoint onto the engine. Auth-protected
// groups share the same JWT middleware; the caller identity it extracts
// is the only identity the handlers ever use.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	users := r.Group("/api/users")
	users.Use(middleware.AuthMiddleware(h.cfg.JWTSecret))
	{
		users.GET("", h.GetAllUsers)
		users.GET("/:user_id", h.GetUser)
		users.PUT("/me/name", h.UpdateName)
		users.PUT("/me/image", h.UpdateImage)
	}

	friends := r.Group("/api/friends")
	friends.Use(middleware.AuthMiddleware(h.cfg.JWTSecret))
	{
		friends.GET("", h.GetFriends)
		friends.GET("/ids", h.GetFriendIDs)
		friends.GET("/requests", h.GetFriendRequests)
		friends.GET("/requests/sent", h.GetSentFriendRequests)
		friends.POST("/request", h.SendFriendRequest)
		friends.POST("/accept/:user_id", h.AcceptFriendRequest)
		friends.POST("/reject/:user_id", h.RejectFriendRequest)
	}

	messages := r.Group("/api/messages")
	messages.Use(middleware.AuthMiddleware(h.cfg.JWTSecret))
	{
		messages.POST("", h.SendMessage)
		messages.GET("/:user_id", h.GetConversation)
		messages.POST("/delete", h.DeleteMessages)
	}

	status := r.Group("/api/status")
	status.Use(middleware.AuthMiddleware(h.cfg.JWTSecret))
	{
		status.POST("", h.PostStatus)
		status.GET("/feed", h.GetFeed)
	}

	files := r.Group("/api/files")
	files.Use(middleware.AuthMiddleware(h.cfg.JWTSecret))
	{
		files.POST("/upload", h.UploadFile)
	}
	r.GET("/files/:filename", h.ServeFile)
}
