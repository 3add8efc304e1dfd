package router

import (
	"postline/internal/handlers"
	"postline/internal/middleware"
	"postline/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires the API onto the engine. LoadUser runs everywhere
// so read paths see an optional identity; AuthRequired guards mutations.
func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	// Services
	tokenService := services.NewTokenService()
	authService := services.NewAuthService(db)
	postService := services.NewPostService(db)
	listingService := services.NewListingService(db)
	likeService := services.NewLikeService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, tokenService)
	postHandler := handlers.NewPostHandler(postService, listingService)
	likeHandler := handlers.NewLikeHandler(likeService)

	r.Use(middleware.LoadUser(tokenService))

	api := r.Group("/api")

	auth := api.Group("/authentication")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	posts := api.Group("/posts")
	{
		// 公共路由：列表+搜索，带 token 时附加 liked
		posts.POST("", postHandler.List)

		// 受保护路由
		authorized := posts.Group("")
		authorized.Use(middleware.AuthRequired())
		{
			authorized.POST("/create", postHandler.Create)          // 发布帖子
			authorized.DELETE("/:postId", postHandler.Delete)       // 删除自己的帖子
			authorized.POST("/:postId/like", likeHandler.Like)      // 点赞
			authorized.DELETE("/:postId/like", likeHandler.Unlike)  // 取消点赞
			authorized.DELETE("/clear/likes", likeHandler.ClearAll) // 清空点赞
		}
	}
}
