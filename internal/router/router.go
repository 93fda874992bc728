package router

import (
	"pixfeed/internal/handlers"
	"pixfeed/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, blobs services.BlobStore) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	profileHandler := handlers.NewProfileHandler(blobs)
	feedHandler := handlers.NewFeedHandler(blobs)
	commentHandler := handlers.NewCommentHandler()
	likeHandler := handlers.NewLikeHandler()
	healthHandler := handlers.NewHealthHandler()

	r.GET("/health", healthHandler.Check)

	// Identity
	r.POST("/accounts", authHandler.Register)
	r.POST("/sessions", authHandler.Login)
	r.GET("/sessions/verify", authHandler.Verify)
	r.POST("/accounts/:key/avatar", profileHandler.UploadAvatar)
	r.POST("/accounts/:key/profile", profileHandler.UpdateProfile)

	// Feed
	r.GET("/posts", feedHandler.List)
	r.POST("/posts", feedHandler.Create)
	r.DELETE("/posts/:key", feedHandler.Delete)

	// Engagement and comments
	r.POST("/posts/:key/likes", likeHandler.Toggle)
	r.POST("/posts/:key/comments", commentHandler.Create)
	r.DELETE("/comments/:key", commentHandler.Delete)
}
