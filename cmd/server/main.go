package main

import (
	"fmt"
	"log"
	"time"

	"github.com/qs3c/board_go_server/config"
	"github.com/qs3c/board_go_server/internal/api"
	"github.com/qs3c/board_go_server/internal/api/handler"
	"github.com/qs3c/board_go_server/internal/database"
	"github.com/qs3c/board_go_server/internal/pkg/cache"
	"github.com/qs3c/board_go_server/internal/pkg/cron"
	"github.com/qs3c/board_go_server/internal/repository"
	"github.com/qs3c/board_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis（不可用时评论首页缓存自动退化为未命中）
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, page cache disabled: %v", err)
		rdb = nil
	} else {
		log.Println("Redis connected")
	}
	pageCache := cache.NewCache(rdb, time.Duration(cfg.Comment.CacheTTLSeconds)*time.Second)

	// 初始化 Repository
	memberRepo := repository.NewMemberRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(memberRepo, cfg)
	boardService := service.NewBoardService(db, boardRepo, postRepo, commentRepo, pageCache, cfg)
	postService := service.NewPostService(db, postRepo, boardRepo, commentRepo, pageCache, cfg)
	commentService := service.NewCommentService(db, commentRepo, postRepo, pageCache, cfg)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	boardHandler := handler.NewBoardHandler(boardService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	// 启动定时任务
	cronService := cron.NewService(authService)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		boardHandler,
		postHandler,
		commentHandler,
		memberRepo,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
