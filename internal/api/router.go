package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/api/handler"
	"github.com/qs3c/board_go_server/internal/api/middleware"
	"github.com/qs3c/board_go_server/internal/pkg/response"
	"github.com/qs3c/board_go_server/internal/repository"
)

type Router struct {
	authHandler    *handler.AuthHandler
	boardHandler   *handler.BoardHandler
	postHandler    *handler.PostHandler
	commentHandler *handler.CommentHandler
	memberRepo     *repository.MemberRepository
	cfg            *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	boardHandler *handler.BoardHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
	memberRepo *repository.MemberRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:    authHandler,
		boardHandler:   boardHandler,
		postHandler:    postHandler,
		commentHandler: commentHandler,
		memberRepo:     memberRepo,
		cfg:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	// 认证链：错误归一化 -> JWT 授权 -> 路由访问规则
	engine.Use(middleware.ErrorNormalize())
	engine.Use(middleware.Auth(r.cfg.JWT.Secret, r.memberRepo))
	engine.Use(middleware.Guard(middleware.DefaultRules()))

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		response.BadRequest(c, response.CodeMethodNotSupport, "")
	})

	api := engine.Group("/api")
	{
		// 认证
		api.POST("/register", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)
		api.POST("/refresh", r.authHandler.Refresh)
		api.POST("/logout", r.authHandler.Logout)

		// 板块
		boards := api.Group("/boards")
		{
			boards.GET("", r.boardHandler.List)
			boards.POST("", r.boardHandler.Create)
			boards.GET("/:boardId", r.boardHandler.Read)
			boards.PUT("/:boardId", r.boardHandler.Update)
			boards.DELETE("/:boardId", r.boardHandler.Delete)
		}

		// 帖子
		posts := api.Group("/boards/:boardId/posts")
		{
			posts.GET("", r.postHandler.List)
			posts.POST("", r.postHandler.Create)
			posts.GET("/:postId", r.postHandler.Read)
			posts.PUT("/:postId", r.postHandler.Update)
			posts.DELETE("/:postId", r.postHandler.Delete)
			posts.POST("/:postId/like", r.postHandler.Like)
			posts.DELETE("/:postId/like", r.postHandler.Unlike)
		}

		// 评论
		comments := api.Group("/boards/:boardId/posts/:postId/comments")
		{
			comments.POST("", r.commentHandler.Create)
			comments.GET("", r.commentHandler.ListTopLevel)
			comments.GET("/:commentId", r.commentHandler.Read)
			comments.GET("/:commentId/children", r.commentHandler.ListChildren)
			comments.PUT("/:commentId", r.commentHandler.Update)
			comments.POST("/:commentId/like", r.commentHandler.Like)
			comments.DELETE("/:commentId/like", r.commentHandler.Unlike)
			comments.DELETE("/:commentId", r.commentHandler.Delete)
			comments.DELETE("/:commentId/all", r.commentHandler.DeleteAll)
		}
	}

	return engine
}
